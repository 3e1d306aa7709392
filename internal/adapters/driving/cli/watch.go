package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/knowbase-cli/internal/connectors/dumpfile"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest dump files as they appear",
	Long: `Watches a directory for JSON dump files. Whenever a file is created
or updated, it is ingested like 'knowbase ingest' would. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	watcher := dumpfile.NewWatcher(dir, func(ctx context.Context, path string) {
		records, err := dumpfile.Load(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return
		}

		report, err := ingestService.IngestBatch(ctx, "watch:"+path, records)
		if err != nil {
			logger.Warn("Ingesting %s failed: %v", path, err)
			return
		}
		cmd.Printf("%s: %d added, %d skipped, %d failed\n",
			path, report.Added, report.Skipped, report.Failed)
	})

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)
	if err := watcher.Run(cmd.Context()); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}
