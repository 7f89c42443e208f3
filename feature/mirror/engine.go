package mirror

import (
	"context"
	"time"

	"ditto/core/logger"
	"ditto/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine reconciles the contents of the read roots and replicates the
// resulting output set into every destination.
type Engine struct {
	readRoots []string
	targets   []storage.Target
	workers   int
	log       *zap.Logger
}

// NewEngine validates the read roots and returns a ready engine.
func NewEngine(readRoots []string, targets []storage.Target, workers int, log *zap.Logger) (*Engine, error) {
	for _, root := range readRoots {
		if err := ValidateReadRoot(root); err != nil {
			return nil, err
		}
	}

	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		readRoots: readRoots,
		targets:   targets,
		workers:   workers,
		log:       log,
	}, nil
}

// Run executes one full reconciliation pass and always returns a report;
// fatal errors are reflected in the report status rather than returned.
//
// Enumeration happens up front, so an unreadable source directory fails the
// run before any copy is scheduled. Relative paths are then processed by a
// bounded worker pool; each group is resolved and applied to all
// destinations inside a single worker, which keeps the per-group join point
// and the per-destination check-then-copy decision free of cross-worker
// interleaving. Conflicts and errors flow into the shared recorder.
func (e *Engine) Run(ctx context.Context) *Report {
	started := time.Now()
	runID := uuid.New().String()
	log := logger.WithRunID(e.log, runID)
	rec := NewRecorder()

	log.Info("run started",
		zap.Strings("read_roots", e.readRoots),
		zap.Int("write_roots", len(e.targets)),
		zap.Int("workers", e.workers))

	indexes, err := scanRoots(ctx, e.readRoots)
	if err != nil {
		rec.Fail(err)
		log.Error("enumeration failed", zap.Error(err))
		return e.report(runID, rec, started, 0)
	}

	groups, rels, err := buildGroups(indexes)
	if err != nil {
		rec.Fail(err)
		log.Error("reconciliation failed", zap.Error(err))
		return e.report(runID, rec, started, 0)
	}

	w := &writer{targets: e.targets, rec: rec, log: log}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, rel := range rels {
		group := groups[rel]
		g.Go(func() error {
			for _, item := range resolveGroup(group, rec) {
				w.apply(gctx, item)
			}
			return nil
		})
	}
	// Workers never return errors; everything lands in the recorder.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		rec.Fail(err)
	}

	report := e.report(runID, rec, started, len(rels))
	log.Info("run finished",
		zap.String("status", report.Status.String()),
		zap.Int("paths", report.Paths),
		zap.Int("copied", report.Copied),
		zap.Int("skipped", report.Skipped),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))

	return report
}

func (e *Engine) report(runID string, rec *Recorder, started time.Time, paths int) *Report {
	copied, skipped := rec.counts()
	status := rec.Status()

	return &Report{
		RunID:      runID,
		Status:     status,
		StatusText: status.String(),
		Conflicts:  rec.Conflicts(),
		Errors:     rec.Errors(),
		Paths:      paths,
		Copied:     copied,
		Skipped:    skipped,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
}
