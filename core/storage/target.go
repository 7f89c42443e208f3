package storage

import (
	"context"
	"fmt"
	"strings"
)

// ObjectScheme prefixes write roots that live in object storage.
const ObjectScheme = "s3://"

// Target is a write destination for reconciled files.
//
// The engine only ever needs two operations against a destination: a cheap
// size/existence probe, and a full-file store. Local directories and object
// storage buckets both satisfy this contract.
type Target interface {
	// Name returns a human-readable identifier for the destination,
	// used in conflict records and log events.
	Name() string
	// Stat reports the size of the file at the given relative path and
	// whether it exists. A missing file is not an error.
	Stat(ctx context.Context, rel string) (size int64, exists bool, err error)
	// Store copies the full contents of the local source file to the
	// given relative path, creating intermediate directories as needed.
	Store(ctx context.Context, rel, srcPath string) error
}

// NewTarget builds a Target for the given write root. Roots of the form
// s3://bucket/prefix become object storage targets; everything else is
// treated as a local directory.
func NewTarget(ctx context.Context, root string, cfg Config) (Target, error) {
	if !strings.HasPrefix(root, ObjectScheme) {
		return NewLocalTarget(root)
	}

	bucket, prefix, err := splitObjectRoot(root)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewObjectTarget(ctx, client, bucket, prefix)
}

// splitObjectRoot parses s3://bucket/prefix into its parts.
func splitObjectRoot(root string) (bucket, prefix string, err error) {
	rest := strings.TrimPrefix(root, ObjectScheme)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", "", fmt.Errorf("invalid object root %q: missing bucket", root)
	}

	parts := strings.SplitN(rest, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
