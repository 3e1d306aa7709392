package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDumpFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIngestCmd_IngestsDumpFile(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDumpFile(t, `[
		{"type": "video", "title": "Raft Explained", "url": "https://example.com/raft", "uploader": "Distributed Systems Channel", "transcript": "Leader election and log replication."},
		{"type": "article", "title": "Go Generics", "url": "https://example.com/generics", "source": "daily.dev", "content": "Type parameters in Go 1.18."}
	]`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Added:   2")
	assert.Contains(t, out, "Skipped: 0")
	assert.Contains(t, out, "Failed:  0")

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestCmd_SkipsDuplicatesOnSecondRun(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDumpFile(t, `[
		{"type": "video", "title": "Raft Explained", "url": "https://example.com/raft", "uploader": "Someone", "transcript": "Consensus."}
	]`)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", path})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Skipped: 1")

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestCmd_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", filepath.Join(t.TempDir(), "missing.json")})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading dump file")
}
