// Package file loads and saves the application configuration as a
// TOML file in the knowbase config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the typed application configuration. Field defaults are
// applied on load, so a missing or partial file always yields a
// usable configuration.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Chunking ChunkingConfig `toml:"chunking"`
	Search   SearchConfig   `toml:"search"`
	Ingest   IngestConfig   `toml:"ingest"`
	Article  ArticleConfig  `toml:"article"`
	Ollama   OllamaConfig   `toml:"ollama"`
}

// StoreConfig configures the JSON knowledge store.
type StoreConfig struct {
	// Path is the store file location. Relative paths resolve against
	// the working directory.
	Path string `toml:"path"`
}

// ChunkingConfig configures text chunking.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// SearchConfig configures keyword search.
type SearchConfig struct {
	TitleWeight   int `toml:"title_weight"`
	TagWeight     int `toml:"tag_weight"`
	ContentWeight int `toml:"content_weight"`
	DefaultLimit  int `toml:"default_limit"`
}

// IngestConfig configures batch ingestion.
type IngestConfig struct {
	// AutosaveInterval is the number of added resources between
	// intermediate saves.
	AutosaveInterval int `toml:"autosave_interval"`

	// HistoryEnabled toggles the SQLite run audit.
	HistoryEnabled bool `toml:"history_enabled"`
}

// ArticleConfig holds the engagement thresholds for article tagging.
type ArticleConfig struct {
	PopularUpvotes    int `toml:"popular_upvotes"`
	HighlyUpvoted     int `toml:"highly_upvoted"`
	Discussed         int `toml:"discussed"`
	HighlyDiscussed   int `toml:"highly_discussed"`
	MediumReadMinutes int `toml:"medium_read_minutes"`
	LongReadMinutes   int `toml:"long_read_minutes"`
}

// OllamaConfig configures the LLM advisor backend.
type OllamaConfig struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Store:    StoreConfig{Path: "data/unified_knowledge_base.json"},
		Chunking: ChunkingConfig{Size: 500, Overlap: 100},
		Search:   SearchConfig{TitleWeight: 3, TagWeight: 2, ContentWeight: 1, DefaultLimit: 5},
		Ingest:   IngestConfig{AutosaveInterval: 25, HistoryEnabled: true},
		Article: ArticleConfig{
			PopularUpvotes:    10,
			HighlyUpvoted:     50,
			Discussed:         3,
			HighlyDiscussed:   10,
			MediumReadMinutes: 5,
			LongReadMinutes:   10,
		},
		Ollama: OllamaConfig{
			Enabled:        false,
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2",
			TimeoutSeconds: 120,
		},
	}
}

// DefaultDir returns the knowbase config directory (~/.knowbase).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".knowbase"), nil
}

// Load reads config.toml from configDir, applying defaults for any
// missing values. A missing file is not an error; the defaults are
// returned. If configDir is empty, DefaultDir is used.
func Load(configDir string) (Config, error) {
	cfg := Default()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		configDir = dir
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to config.toml in configDir, creating
// the directory if needed.
func Save(configDir string, cfg Config) error {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Restricted permissions; the file may carry private endpoints.
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// applyDefaults backfills zero values after a partial unmarshal.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Store.Path == "" {
		c.Store.Path = def.Store.Path
	}
	if c.Chunking.Size <= 0 {
		c.Chunking.Size = def.Chunking.Size
	}
	if c.Chunking.Overlap < 0 {
		c.Chunking.Overlap = def.Chunking.Overlap
	}
	if c.Search.TitleWeight <= 0 {
		c.Search.TitleWeight = def.Search.TitleWeight
	}
	if c.Search.TagWeight <= 0 {
		c.Search.TagWeight = def.Search.TagWeight
	}
	if c.Search.ContentWeight <= 0 {
		c.Search.ContentWeight = def.Search.ContentWeight
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = def.Search.DefaultLimit
	}
	if c.Ingest.AutosaveInterval == 0 {
		c.Ingest.AutosaveInterval = def.Ingest.AutosaveInterval
	}
	if c.Article.PopularUpvotes <= 0 {
		c.Article.PopularUpvotes = def.Article.PopularUpvotes
	}
	if c.Article.HighlyUpvoted <= 0 {
		c.Article.HighlyUpvoted = def.Article.HighlyUpvoted
	}
	if c.Article.Discussed <= 0 {
		c.Article.Discussed = def.Article.Discussed
	}
	if c.Article.HighlyDiscussed <= 0 {
		c.Article.HighlyDiscussed = def.Article.HighlyDiscussed
	}
	if c.Article.MediumReadMinutes <= 0 {
		c.Article.MediumReadMinutes = def.Article.MediumReadMinutes
	}
	if c.Article.LongReadMinutes <= 0 {
		c.Article.LongReadMinutes = def.Article.LongReadMinutes
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = def.Ollama.BaseURL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = def.Ollama.Model
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		c.Ollama.TimeoutSeconds = def.Ollama.TimeoutSeconds
	}
}
