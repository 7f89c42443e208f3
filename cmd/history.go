package cmd

import (
	"fmt"

	"ditto/core/config"
	"ditto/core/database"
	"ditto/feature/history"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyUnclean bool
)

// historyCmd lists past runs from the embedded history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs and their outcomes",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyUnclean, "unclean", false, "Only show runs with conflicts or failures")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}
	if cfg.History.Disabled {
		return fmt.Errorf("run history is disabled")
	}

	db, err := database.Connect(cfg.History)
	if err != nil {
		return err
	}

	repo, err := history.NewRepository(db)
	if err != nil {
		return err
	}

	var runs []history.Run
	if historyUnclean {
		runs, err = repo.Unclean()
	} else {
		runs, err = repo.Recent(historyLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-8s  paths=%-6d copied=%-6d skipped=%-6d conflicts=%-4d errors=%-4d  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Status, r.Paths, r.Copied, r.Skipped, r.Conflicts, r.Errors, r.ID)
	}

	stats, err := repo.GetStats()
	if err != nil {
		return err
	}
	fmt.Printf("total: %d runs, %d clean, %d unclean\n", stats.Total, stats.Clean, stats.Unclean)

	return nil
}
