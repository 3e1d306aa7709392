package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeCmd_NoDuplicates(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	seedStore(t, store, "Only One", "https://example.com/one", "text")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"dedupe"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No duplicates found.")
}

func TestDedupeCmd_MergesSharedURL(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	seedStore(t, store, "First Copy", "https://example.com/dup", "article")
	seedStore(t, store, "Second Copy", "https://example.com/dup", "article")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"dedupe"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Merged 1 duplicate group(s), removing 1 resource(s)")

	remaining, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestDedupeCmd_DryRunKeepsEverything(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	seedStore(t, store, "First Copy", "https://example.com/dup", "article")
	seedStore(t, store, "Second Copy", "https://example.com/dup", "article")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"dedupe", "--dry-run"})
	defer func() {
		rootCmd.SetArgs(nil)
		dedupeDryRun = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Would merge")

	remaining, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
