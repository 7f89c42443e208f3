package mirror

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ditto/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTargets(t *testing.T, roots ...string) []storage.Target {
	t.Helper()

	targets := make([]storage.Target, 0, len(roots))
	for _, root := range roots {
		target, err := storage.NewLocalTarget(root)
		require.NoError(t, err)
		targets = append(targets, target)
	}
	return targets
}

// readTree snapshots a destination as rel path -> content.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestEngine_CleanRun(t *testing.T) {
	r1, r2 := t.TempDir(), t.TempDir()
	for _, root := range []string{r1, r2} {
		writeTestFile(t, root, "photo.jpg", "picture bytes")
		writeTestFile(t, root, "docs/notes.txt", "notes")
		writeTestFile(t, root, ".DS_Store", "junk")
	}

	d1, d2 := t.TempDir(), t.TempDir()
	engine, err := NewEngine([]string{r1, r2}, localTargets(t, d1, d2), 4, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())

	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, 0, report.Status.ExitCode())
	assert.Equal(t, 2, report.Paths)
	assert.Equal(t, 4, report.Copied)
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.RunID)

	want := map[string]string{
		"photo.jpg":      "picture bytes",
		"docs/notes.txt": "notes",
	}
	assert.Equal(t, want, readTree(t, d1))
	assert.Equal(t, want, readTree(t, d2))
}

func TestEngine_ReadConflict(t *testing.T) {
	r1, r2 := t.TempDir(), t.TempDir()
	writeTestFile(t, r1, "shared.txt", "everyone agrees")
	writeTestFile(t, r2, "shared.txt", "everyone agrees")
	// Same size, different bytes: the digest has to catch this.
	writeTestFile(t, r1, "photo.jpg", "version-A")
	writeTestFile(t, r2, "photo.jpg", "version-B")

	dest := t.TempDir()
	engine, err := NewEngine([]string{r1, r2}, localTargets(t, dest), 4, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())

	assert.Equal(t, StatusWarn, report.Status)
	assert.Equal(t, 2, report.Status.ExitCode())
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictRead, report.Conflicts[0].Kind)
	assert.Equal(t, "photo.jpg", report.Conflicts[0].RelPath)

	// Both variants land under conflict names, in root order; the plain
	// name is never written.
	assert.Equal(t, map[string]string{
		"shared.txt":                 "everyone agrees",
		"photo.read-conflict-00.jpg": "version-A",
		"photo.read-conflict-01.jpg": "version-B",
	}, readTree(t, dest))
}

func TestEngine_RerunIsIdempotent(t *testing.T) {
	r1, r2 := t.TempDir(), t.TempDir()
	writeTestFile(t, r1, "a.txt", "agree")
	writeTestFile(t, r2, "a.txt", "agree")
	writeTestFile(t, r1, "b.txt", "ver-1")
	writeTestFile(t, r2, "b.txt", "ver-2")

	dest := t.TempDir()
	engine, err := NewEngine([]string{r1, r2}, localTargets(t, dest), 2, nil)
	require.NoError(t, err)

	first := engine.Run(context.Background())
	snapshot := readTree(t, dest)

	second := engine.Run(context.Background())

	// The read conflict persists, so the outcome is stable; nothing is
	// copied again.
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, StatusWarn, second.Status)
	assert.Equal(t, 0, second.Copied)
	assert.Equal(t, first.Copied+first.Skipped, second.Skipped)
	assert.Equal(t, snapshot, readTree(t, dest))
}

func TestEngine_WriteConflict(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, src, "report.pdf", "fresh and longer content")

	dest := t.TempDir()
	writeTestFile(t, dest, "report.pdf", "stale")

	engine, err := NewEngine([]string{src}, localTargets(t, dest), 1, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())

	assert.Equal(t, StatusWarn, report.Status)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictWrite, report.Conflicts[0].Kind)
	assert.Equal(t, "report.pdf", report.Conflicts[0].RelPath)

	// The occupant keeps both its name and its bytes.
	assert.Equal(t, map[string]string{
		"report.pdf":                   "stale",
		"report.write-conflict-00.pdf": "fresh and longer content",
	}, readTree(t, dest))
}

func TestEngine_SameSizeDestinationIsSkipped(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, src, "a.txt", "AAAA")

	dest := t.TempDir()
	// Same size, different bytes. The destination probe is size-only, so
	// this occupant passes as already synced and is left untouched.
	writeTestFile(t, dest, "a.txt", "BBBB")

	engine, err := NewEngine([]string{src}, localTargets(t, dest), 1, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())

	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, 0, report.Copied)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, map[string]string{"a.txt": "BBBB"}, readTree(t, dest))
}

func TestEngine_CopyPreservesModTime(t *testing.T) {
	src := t.TempDir()
	p := writeTestFile(t, src, "old.txt", "content")
	mtime := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(p, mtime, mtime))

	dest := t.TempDir()
	engine, err := NewEngine([]string{src}, localTargets(t, dest), 1, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())
	require.Equal(t, StatusOK, report.Status)

	info, err := os.Stat(filepath.Join(dest, "old.txt"))
	require.NoError(t, err)
	assert.WithinDuration(t, mtime, info.ModTime(), time.Second)
}

func TestEngine_FileDirectoryCollisionFails(t *testing.T) {
	r1, r2 := t.TempDir(), t.TempDir()
	writeTestFile(t, r1, "data", "a plain file")
	writeTestFile(t, r2, "data/inner.txt", "a directory")

	dest := t.TempDir()
	engine, err := NewEngine([]string{r1, r2}, localTargets(t, dest), 2, nil)
	require.NoError(t, err)

	report := engine.Run(context.Background())

	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, 1, report.Status.ExitCode())
	assert.Equal(t, 0, report.Copied)
	assert.Empty(t, readTree(t, dest))
}

func TestEngine_CanceledContextFails(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, src, "a.txt", "x")

	dest := t.TempDir()
	engine, err := NewEngine([]string{src}, localTargets(t, dest), 1, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := engine.Run(ctx)
	assert.Equal(t, StatusFail, report.Status)
}

func TestNewEngine_RejectsBadRoot(t *testing.T) {
	dir := t.TempDir()

	_, err := NewEngine([]string{filepath.Join(dir, "missing")}, nil, 1, nil)
	assert.Error(t, err)
}
