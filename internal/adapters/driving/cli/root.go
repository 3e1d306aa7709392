// Package cli implements the knowbase command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging across all commands.
var verbose bool

// Services injected from main before Execute.
var (
	ingestService  driving.IngestService
	searchService  driving.SearchService
	statsService   driving.StatsService
	dedupeService  driving.DedupeService
	advisorService driving.AdvisorService
	historyStore   driven.HistoryStore
	resourceStore  driven.ResourceStore
)

// Services aggregates everything the commands need. Optional fields
// may be nil; the commands that need them fail with a clear error.
type Services struct {
	Ingest  driving.IngestService
	Search  driving.SearchService
	Stats   driving.StatsService
	Dedupe  driving.DedupeService
	Advisor driving.AdvisorService
	History driven.HistoryStore
	Store   driven.ResourceStore
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	searchService = s.Search
	statsService = s.Stats
	dedupeService = s.Dedupe
	advisorService = s.Advisor
	historyStore = s.History
	resourceStore = s.Store
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "knowbase",
	Short: "Personal knowledge base aggregator",
	Long: `Knowbase collects videos, articles, PDFs and notes into a single
searchable knowledge base stored as a local JSON file.

Ingest scraped dump files, search by keyword, inspect aggregate
statistics, merge duplicates, or ask a local LLM questions grounded on
what you have saved.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
