// Command knowbase is the personal knowledge base aggregator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/knowbase-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/services"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/article"
	"github.com/custodia-labs/knowbase-cli/internal/postprocessors/chunker"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := file.DefaultDir()
	if err != nil {
		return err
	}

	cfg, err := file.Load(configDir)
	if err != nil {
		// A broken config file should not brick the CLI. Warn and run
		// on defaults.
		logger.Warn("using default configuration: %v", err)
	}

	store, err := jsonfile.NewStore(resolveStorePath(configDir, cfg.Store.Path))
	if err != nil {
		return fmt.Errorf("opening knowledge store: %w", err)
	}

	ch := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	registry := normalisers.Defaults(ch, article.Options{
		PopularUpvotes:    cfg.Article.PopularUpvotes,
		HighlyUpvoted:     cfg.Article.HighlyUpvoted,
		Discussed:         cfg.Article.Discussed,
		HighlyDiscussed:   cfg.Article.HighlyDiscussed,
		MediumReadMinutes: cfg.Article.MediumReadMinutes,
		LongReadMinutes:   cfg.Article.LongReadMinutes,
	})

	ingestOpts := []services.IngestOption{
		services.WithAutosaveInterval(cfg.Ingest.AutosaveInterval),
	}

	var history driven.HistoryStore
	if cfg.Ingest.HistoryEnabled {
		h, err := sqlite.NewHistoryStore(filepath.Join(configDir, "data"))
		if err != nil {
			// History is an audit nicety, never a reason to refuse to run.
			logger.Warn("ingest history disabled: %v", err)
		} else {
			history = h
			ingestOpts = append(ingestOpts, services.WithHistory(h))
			defer h.Close()
		}
	}

	searchSvc := services.NewSearchService(store, services.WithWeights(services.Weights{
		Title:   cfg.Search.TitleWeight,
		Tag:     cfg.Search.TagWeight,
		Content: cfg.Search.ContentWeight,
	}))

	var llm driven.LLMService
	if cfg.Ollama.Enabled {
		llm = ollama.NewLLMService(ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second,
		})
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:  services.NewIngestService(store, registry, ch, ingestOpts...),
		Search:  searchSvc,
		Stats:   services.NewStatsService(store),
		Dedupe:  services.NewDedupeService(store),
		Advisor: services.NewAdvisorService(searchSvc, llm),
		History: history,
		Store:   store,
	})

	return cli.Execute()
}

// resolveStorePath anchors a relative store path under the config
// directory so the store location does not depend on the working
// directory the CLI happens to run from.
func resolveStorePath(configDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(configDir, path)
}
