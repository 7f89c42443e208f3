package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs a callback whenever any of the watched read roots change.
// Events are debounced: the callback fires only after the tree has been
// quiet for the configured window, and runs never overlap.
type Watcher struct {
	fw       *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	log      *zap.Logger
}

// New creates a watcher over the given read roots.
func New(roots []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		fw:       fw,
		roots:    roots,
		debounce: debounce,
		log:      log,
	}

	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run blocks, invoking run after each debounced burst of changes, until the
// context is canceled. The callback is always invoked once at startup so a
// fresh watch session begins from a reconciled state.
func (w *Watcher) Run(ctx context.Context, run func(context.Context)) error {
	defer func() {
		_ = w.fw.Close()
	}()

	run(ctx)

	var timer *time.Timer

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}

			// New directories need to be watched as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.log.Warn("failed to watch new directory",
							zap.String("path", event.Name),
							zap.Error(err))
					}
				}
			}

			w.log.Debug("change detected", zap.String("path", event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			// Runs execute on the event loop itself, so they can never
			// overlap; changes arriving mid-run queue up behind it.
			timer = nil
			run(ctx)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))
		}
	}
}

// addRecursive registers a directory and all its non-hidden subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}

		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		w.log.Debug("watching directory", zap.String("path", path))
		return nil
	})
}

// ignored filters out events under hidden files and directories, which the
// engine never replicates anyway.
func (w *Watcher) ignored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
