package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Long: `Prints aggregate statistics: totals, per-source breakdown, top
authors and tags, and the most recent additions.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	report, err := statsService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Resources: %d (%d chunks)\n", report.TotalResources, report.TotalChunks)
	cmd.Println()

	cmd.Println("By source:")
	buckets := make([]string, 0, len(report.BySource))
	for bucket := range report.BySource {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	for _, bucket := range buckets {
		b := report.BySource[bucket]
		cmd.Printf("  %-10s %4d resources, %4d chunks\n", bucket, b.Count, b.Chunks)
	}
	cmd.Println()

	printTopCounts(cmd, "Top authors:", report.ByAuthor)
	printTopCounts(cmd, "Top tags:", report.ByTags)

	if len(report.RecentAdditions) > 0 {
		cmd.Println("Recent additions:")
		for _, recent := range report.RecentAdditions {
			cmd.Printf("  %s  %s (%s)\n", recent.DateAdded, recent.Title, recent.SourceType)
		}
	}

	return nil
}

// printTopCounts prints the five largest entries of a frequency map.
func printTopCounts(cmd *cobra.Command, header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) > 5 {
		entries = entries[:5]
	}

	cmd.Println(header)
	for _, e := range entries {
		cmd.Printf("  %-30s %d\n", e.key, e.count)
	}
	cmd.Println()
}
