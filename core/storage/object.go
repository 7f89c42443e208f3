package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
)

// ObjectTarget writes reconciled files into an object storage bucket under
// an optional key prefix. Object stores have no directories, so intermediate
// directory creation is a no-op; the size-only skip/conflict rules are the
// same as for local targets.
type ObjectTarget struct {
	client Client
	bucket string
	prefix string
}

// NewObjectTarget verifies the bucket exists and returns an object target.
func NewObjectTarget(ctx context.Context, client Client, bucket, prefix string) (*ObjectTarget, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket does not exist: %q", bucket)
	}

	return &ObjectTarget{client: client, bucket: bucket, prefix: prefix}, nil
}

// Name returns the s3://bucket/prefix form of the destination.
func (t *ObjectTarget) Name() string {
	if t.prefix == "" {
		return ObjectScheme + t.bucket
	}
	return ObjectScheme + t.bucket + "/" + t.prefix
}

// Stat reports the size of the object at the given relative path, if any.
func (t *ObjectTarget) Stat(ctx context.Context, rel string) (int64, bool, error) {
	info, err := t.client.StatObject(ctx, t.bucket, t.key(rel), minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to stat object %q: %w", t.key(rel), err)
	}

	return info.Size, true, nil
}

// Store uploads the source file as an object.
func (t *ObjectTarget) Store(ctx context.Context, rel, srcPath string) error {
	_, err := t.client.FPutObject(ctx, t.bucket, t.key(rel), srcPath, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", t.key(rel), err)
	}

	return nil
}

func (t *ObjectTarget) key(rel string) string {
	if t.prefix == "" {
		return rel
	}
	return path.Join(t.prefix, rel)
}
