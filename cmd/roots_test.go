package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRoots(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantRead  []string
		wantWrite []string
		wantErr   bool
	}{
		{
			name:      "basic",
			args:      []string{"read", "/mnt/disk1", "/mnt/disk2", "write", "/mnt/backup"},
			wantRead:  []string{"/mnt/disk1", "/mnt/disk2"},
			wantWrite: []string{"/mnt/backup"},
		},
		{
			name:      "write before read",
			args:      []string{"write", "/mnt/backup", "read", "/mnt/disk1"},
			wantRead:  []string{"/mnt/disk1"},
			wantWrite: []string{"/mnt/backup"},
		},
		{
			name:      "trailing slashes stripped",
			args:      []string{"read", "/mnt/disk1/", "write", "/mnt/backup/"},
			wantRead:  []string{"/mnt/disk1"},
			wantWrite: []string{"/mnt/backup"},
		},
		{
			name:      "bare root slash kept for later rejection",
			args:      []string{"read", "/", "write", "/mnt/backup"},
			wantRead:  []string{"/"},
			wantWrite: []string{"/mnt/backup"},
		},
		{
			name:      "object storage write root",
			args:      []string{"read", "/mnt/disk1", "write", "s3://archive/photos/"},
			wantRead:  []string{"/mnt/disk1"},
			wantWrite: []string{"s3://archive/photos"},
		},
		{
			name:    "argument before any keyword",
			args:    []string{"/mnt/disk1", "read", "/mnt/disk2", "write", "/mnt/backup"},
			wantErr: true,
		},
		{
			name:    "no read roots",
			args:    []string{"read", "write", "/mnt/backup"},
			wantErr: true,
		},
		{
			name:    "no write roots",
			args:    []string{"read", "/mnt/disk1", "write"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readRoots, writeRoots, err := splitRoots(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRead, readRoots)
			assert.Equal(t, tt.wantWrite, writeRoots)
		})
	}
}
