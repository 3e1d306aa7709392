package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dedupeDryRun bool

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find and merge duplicate resources",
	Long: `Groups resources that share a source URL or a normalised title and
merges each group into its highest-quality member. Tags from merged
duplicates are kept on the survivor.

Use --dry-run to see what would be merged without changing anything.`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "report duplicates without merging")
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, _ []string) error {
	if dedupeService == nil {
		return errors.New("dedupe service not configured")
	}

	report, err := dedupeService.Merge(cmd.Context(), dedupeDryRun)
	if err != nil {
		return fmt.Errorf("deduplicating: %w", err)
	}

	if report.Groups == 0 {
		cmd.Println("No duplicates found.")
		return nil
	}

	verb := "Merged"
	if dedupeDryRun {
		verb = "Would merge"
	}
	cmd.Printf("%s %d duplicate group(s), removing %d resource(s)\n",
		verb, report.Groups, len(report.Removed))
	for _, id := range report.Removed {
		cmd.Printf("  - %s\n", id)
	}
	return nil
}
