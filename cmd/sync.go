package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ditto/core/config"
	"ditto/core/database"
	"ditto/core/logger"
	"ditto/feature/history"
	"ditto/feature/mirror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd performs one full reconciliation pass.
var syncCmd = &cobra.Command{
	Use:   "sync read <roots...> write <roots...>",
	Short: "Reconcile the read roots and replicate them into the write roots once",
	Long: `Reconcile the read roots and replicate the agreed (or conflict-named)
output set into every write root.

Write roots are local directories, or S3 prefixes given as s3://bucket/prefix.

Examples:
  # Two redundant source disks onto one fresh destination
  ditto sync read /mnt/disk1 /mnt/disk2 write /mnt/backup

  # Fan out to two destinations, one of them an S3 bucket
  ditto sync read /mnt/disk1 write /mnt/backup s3://archive/photos`,
	Args: cobra.MinimumNArgs(4),
	RunE: runSync,
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	report := engine.Run(ctx)
	saveHistory(cfg, l, report)

	if report.Status != mirror.StatusOK {
		_ = l.Sync()
		os.Exit(report.Status.ExitCode())
	}

	return nil
}

// saveHistory persists the run report. History is best-effort and never
// changes the run outcome.
func saveHistory(cfg *config.Config, l *zap.Logger, report *mirror.Report) {
	if cfg.History.Disabled {
		return
	}

	db, err := database.Connect(cfg.History)
	if err != nil {
		l.Warn("history unavailable", zap.Error(err))
		return
	}

	repo, err := history.NewRepository(db)
	if err != nil {
		l.Warn("history unavailable", zap.Error(err))
		return
	}

	if err := repo.Save(report); err != nil {
		l.Warn("failed to save run history", zap.Error(err))
	}
}
