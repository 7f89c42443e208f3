package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalTarget writes reconciled files into a local directory tree.
type LocalTarget struct {
	root string
}

// NewLocalTarget validates the write root and returns a local target.
// A missing root directory is created non-recursively, matching the
// behavior users expect from a freshly-plugged destination disk.
func NewLocalTarget(root string) (*LocalTarget, error) {
	if root == string(os.PathSeparator) {
		return nil, fmt.Errorf("can not use %q as write root", root)
	}

	info, err := os.Stat(root)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("write root exists, but is not a directory: %q", root)
		}
	case os.IsNotExist(err):
		if err := os.Mkdir(root, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create write root: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat write root %q: %w", root, err)
	}

	return &LocalTarget{root: root}, nil
}

// Name returns the write root path.
func (t *LocalTarget) Name() string {
	return t.root
}

// Stat reports the size of the destination file, if any.
func (t *LocalTarget) Stat(ctx context.Context, rel string) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	dest := filepath.Join(t.root, filepath.FromSlash(rel))
	info, err := os.Stat(dest)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to stat %q: %w", dest, err)
	}
	if info.IsDir() {
		return 0, false, fmt.Errorf("destination path is a directory: %q", dest)
	}

	return info.Size(), true, nil
}

// Store copies the source file to the destination path. The copy lands in a
// temp file in the destination directory first and is renamed into place, so
// a destination file either has its complete contents or does not exist.
func (t *LocalTarget) Store(ctx context.Context, rel, srcPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := filepath.Join(t.root, filepath.FromSlash(rel))
	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", srcPath, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(src)

	srcInfo, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", srcPath, err)
	}

	tmp, err := os.CreateTemp(destDir, ".ditto-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q: %w", destDir, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to copy %q to %q: %w", srcPath, dest, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Carry the source mtime over so destination trees are comparable
	// run over run; permissions are normalized rather than preserved.
	if err := os.Chtimes(tmpPath, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set file times on %q: %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod %q: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %q to %q: %w", tmpPath, dest, err)
	}

	return nil
}
