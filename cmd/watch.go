package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"ditto/core/config"
	"ditto/core/logger"
	"ditto/core/server"
	"ditto/feature/mirror"
	"ditto/feature/watch"

	"github.com/spf13/cobra"
)

// watchCmd keeps destinations current by re-running the engine on changes.
var watchCmd = &cobra.Command{
	Use:   "watch read <roots...> write <roots...>",
	Short: "Re-run the reconciliation whenever a read root changes",
	Long: `Watch the read roots and re-run the reconciliation after each burst of
changes. Runs are debounced and serialized, so the destinations are never
written by two overlapping passes.

With SERVER_ENABLED=true a status endpoint serves the last run report:

  GET /healthz
  GET /status`,
	Args: cobra.MinimumNArgs(4),
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Sync()
	}()

	readRoots, writeRoots, err := splitRoots(args)
	if err != nil {
		return err
	}

	targets, err := buildTargets(ctx, writeRoots, cfg.Storage)
	if err != nil {
		return err
	}

	engine, err := mirror.NewEngine(readRoots, targets, cfg.Engine.Workers, l)
	if err != nil {
		return err
	}

	store := &server.StatusStore{}
	if cfg.Server.Enabled {
		app := server.New(store, l)
		server.Listen(app, cfg.Server, l)
		defer func() {
			_ = app.Shutdown()
		}()
	}

	debounce := time.Duration(cfg.Engine.DebounceMs) * time.Millisecond
	watcher, err := watch.New(readRoots, debounce, l)
	if err != nil {
		return err
	}

	err = watcher.Run(ctx, func(runCtx context.Context) {
		report := engine.Run(runCtx)
		store.Set(report)
		saveHistory(cfg, l, report)
	})
	if errors.Is(err, context.Canceled) {
		l.Info("watch stopped")
		return nil
	}

	return err
}
