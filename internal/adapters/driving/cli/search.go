package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

var (
	searchLimit  int
	searchSource string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Searches stored resources by keyword. Title matches score highest,
tag matches next, content matches lowest. Results are printed best
match first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "restrict to one source type (video, article, pdf, text)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{Limit: searchLimit}
	if searchSource != "" {
		source := domain.ParseSourceType(searchSource)
		if source == domain.SourceUnknown {
			return fmt.Errorf("unknown source type %q", searchSource)
		}
		opts.Source = source
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		meta := &results[i].Metadata
		cmd.Printf("  [%d] %s (score %d)\n", i+1, meta.Title, results[i].Score)
		cmd.Printf("      %s · %s\n", meta.SourceType, meta.Uploader)
		if meta.URL != "" {
			cmd.Printf("      %s\n", meta.URL)
		}
		if results[i].Content != "" {
			cmd.Printf("      %s\n", domain.Preview(results[i].Content, 200))
		}
		cmd.Println()
	}

	return nil
}
