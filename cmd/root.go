package cmd

import (
	"fmt"
	"os"

	"ditto/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ditto",
	Short: "Replicate a redundant directory tree into one or more destinations",
	Long: `Ditto reconciles a directory tree that exists in several presumed-identical
copies (read roots) and replicates it into one or more destinations (write
roots). Divergent copies are detected by content hashing and preserved under
deterministic conflict names instead of being overwritten or dropped.

Exit codes: 0 clean, 1 fatal I/O error, 2 completed with merge conflicts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches user expectations for a CLI tool.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
