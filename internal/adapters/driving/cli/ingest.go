package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/knowbase-cli/internal/connectors/dumpfile"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dump-file]",
	Short: "Ingest a JSON dump file",
	Long: `Reads raw records from a JSON dump file, normalises them into
knowledge resources and stores them. Duplicate records (same URL and
title) are skipped; malformed records are counted and reported but do
not abort the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	records, err := dumpfile.Load(path)
	if err != nil {
		return fmt.Errorf("loading dump file: %w", err)
	}

	report, err := ingestService.IngestBatch(cmd.Context(), path, records)
	if err != nil {
		return fmt.Errorf("ingesting batch: %w", err)
	}

	cmd.Printf("Ingested %s\n", path)
	cmd.Printf("  Added:   %d\n", report.Added)
	cmd.Printf("  Skipped: %d\n", report.Skipped)
	cmd.Printf("  Failed:  %d\n", report.Failed)
	return nil
}
