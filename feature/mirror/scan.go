package mirror

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// rootIndex is the deterministic listing of one read root: every non-hidden
// regular file keyed by slash-separated relative path, plus the set of
// directory paths so file/directory collisions across roots can be detected.
type rootIndex struct {
	root  string
	files map[string]int64
	dirs  map[string]struct{}
}

// ValidateReadRoot checks that a read root is a usable directory.
func ValidateReadRoot(root string) error {
	if root == string(os.PathSeparator) {
		return fmt.Errorf("can not use %q as read root", root)
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return fmt.Errorf("read root does not exist: %q", root)
	}
	if err != nil {
		return fmt.Errorf("failed to stat read root %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("read root is not a directory: %q", root)
	}

	return nil
}

// scanRoot walks one read root and builds its index. WalkDir visits entries
// in lexical order, so the sequence is deterministic for a given tree.
// Hidden entries (leading dot) are pruned entirely: hidden directories are
// not descended into and hidden files are never listed. Any walk error is
// fatal for the run.
func scanRoot(ctx context.Context, root string) (*rootIndex, error) {
	idx := &rootIndex{
		root:  root,
		files: make(map[string]int64),
		dirs:  make(map[string]struct{}),
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == root {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			idx.dirs[rel] = struct{}{}
			return nil
		}

		// Symlinks and other irregular entries are not replicated.
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		idx.files[rel] = info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %q: %w", root, err)
	}

	return idx, nil
}

// scanRoots builds the index of every read root concurrently.
func scanRoots(ctx context.Context, roots []string) ([]*rootIndex, error) {
	indexes := make([]*rootIndex, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			idx, err := scanRoot(gctx, root)
			if err != nil {
				return err
			}
			indexes[i] = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return indexes, nil
}
