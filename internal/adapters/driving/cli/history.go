package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent ingestion runs",
	Long:  `Lists recent batch ingestion runs from the audit history, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("ingest history is disabled; enable it in the [ingest] config section")
	}

	runs, err := historyStore.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No ingestion runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s\n", run.StartedAt.Local().Format(time.RFC3339), run.Source)
		cmd.Printf("  added %d, skipped %d, failed %d", run.Added, run.Skipped, run.Failed)
		if run.Error != "" {
			cmd.Printf("  (aborted: %s)", run.Error)
		}
		cmd.Println()
	}
	return nil
}
