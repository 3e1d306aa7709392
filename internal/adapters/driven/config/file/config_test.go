package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 500, cfg.Chunking.Size)
	assert.Equal(t, 3, cfg.Search.TitleWeight)
	assert.False(t, cfg.Ollama.Enabled)
}

func TestLoad_PartialFileBackfillsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
size = 1000

[ollama]
enabled = true
model = "mistral"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Chunking.Size)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.True(t, cfg.Ollama.Enabled)
	assert.Equal(t, "mistral", cfg.Ollama.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "data/unified_knowledge_base.json", cfg.Store.Path)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [ toml"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Store.Path = "/tmp/kb.json"
	cfg.Search.DefaultLimit = 10
	cfg.Ingest.AutosaveInterval = 50

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	require.NoError(t, Save(dir, Default()))

	_, err := os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}
