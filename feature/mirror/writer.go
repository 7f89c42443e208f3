package mirror

import (
	"context"
	"fmt"

	"ditto/core/storage"

	"go.uber.org/zap"
)

// writer applies one output item to every destination. The decision for a
// given (item, destination) pair is made and acted on inside one call, so
// the existence check and the copy are never interleaved with other work on
// the same destination path.
type writer struct {
	targets []storage.Target
	rec     *Recorder
	log     *zap.Logger
}

func (w *writer) apply(ctx context.Context, item OutputItem) {
	for _, t := range w.targets {
		w.applyOne(ctx, t, item)
	}
}

func (w *writer) applyOne(ctx context.Context, t storage.Target, item OutputItem) {
	size, exists, err := t.Stat(ctx, item.RelPath)
	if err != nil {
		w.rec.Fail(err)
		return
	}

	if !exists {
		w.store(ctx, t, item.RelPath, item)
		return
	}

	if size == item.Size {
		// Size matches: treat as already synced. Content is deliberately
		// not re-hashed, so a same-size different-content occupant is
		// never detected.
		w.rec.MarkSkipped()
		w.log.Debug("already synced",
			zap.String("path", item.RelPath),
			zap.String("dest", t.Name()))
		return
	}

	// Write merge conflict: the occupant keeps its name, the incoming copy
	// lands under a conflict-disambiguated name next to it.
	conflictRel := ConflictName(item.RelPath, ConflictWrite, 0, 1)
	w.rec.Conflict(ConflictRecord{
		Kind:         ConflictWrite,
		RelPath:      item.RelPath,
		Participants: []string{item.SrcPath, t.Name() + "/" + item.RelPath},
	})
	w.log.Warn("write merge conflict",
		zap.String("path", item.RelPath),
		zap.String("dest", t.Name()),
		zap.Int64("src_size", item.Size),
		zap.Int64("dest_size", size),
		zap.String("conflict_path", conflictRel))

	csize, cexists, err := t.Stat(ctx, conflictRel)
	if err != nil {
		w.rec.Fail(err)
		return
	}
	if cexists {
		if csize == item.Size {
			// Conflict copy from an earlier run; re-runs stay idempotent.
			w.rec.MarkSkipped()
			return
		}
		// The conflict slot itself is occupied by different content.
		// Nothing is overwritten; both occupants are left in place.
		w.rec.Warn(fmt.Errorf("conflict destination already occupied: %s/%s", t.Name(), conflictRel))
		return
	}

	w.store(ctx, t, conflictRel, item)
}

func (w *writer) store(ctx context.Context, t storage.Target, rel string, item OutputItem) {
	if err := t.Store(ctx, rel, item.SrcPath); err != nil {
		// A failed copy means the requested data movement did not happen;
		// unlike conflicts this is fatal for the run.
		w.rec.Fail(err)
		return
	}

	w.rec.MarkCopied()
	w.log.Info("copied",
		zap.String("path", rel),
		zap.String("dest", t.Name()))
}
