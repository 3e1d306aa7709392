package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

func testResource(url, title string) *domain.Resource {
	return &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:         domain.ContentID(url, title),
			Title:      title,
			SourceType: domain.SourceArticle,
			SourceURL:  url,
			Author:     "Unknown",
			DateAdded:  "2025-06-01T10:00:00Z",
			Tags:       []string{"article"},
		},
		Content:    "body text",
		Chunks:     []string{"body text"},
		ChunkCount: 1,
	}
}

func TestStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kb.json")

	s, err := NewStore(path)
	require.NoError(t, err)

	res := testResource("https://x.com/a", "Roundtrip")
	require.NoError(t, s.Put(ctx, res))
	require.NoError(t, s.Save(ctx))

	// Reopen from disk.
	s2, err := NewStore(path)
	require.NoError(t, err)

	got, err := s2.Get(ctx, res.ID())
	require.NoError(t, err)
	assert.Equal(t, res.Metadata.Title, got.Metadata.Title)
	assert.Equal(t, res.Content, got.Content)
	assert.Equal(t, res.Chunks, got.Chunks)

	count, err := s2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_PersistedShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kb.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	res := testResource("https://x.com/a", "Shape")
	require.NoError(t, s.Put(ctx, res))
	require.NoError(t, s.Save(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &onDisk))

	entry, ok := onDisk[res.ID()]
	require.True(t, ok, "top level is keyed by content id")
	for _, key := range []string{"metadata", "content", "chunks", "chunk_count"} {
		assert.Contains(t, entry, key)
	}
}

func TestStore_NonASCIIPreserved(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kb.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	res := testResource("https://x.com/jp", "日本語のタイトル")
	require.NoError(t, s.Put(ctx, res))
	require.NoError(t, s.Save(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "日本語のタイトル", "non-ASCII must not be escaped")
}

func TestStore_BackupRotation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, testResource("https://x.com/a", "First")))
	require.NoError(t, s.Save(ctx))

	require.NoError(t, s.Put(ctx, testResource("https://x.com/b", "Second")))
	require.NoError(t, s.Save(ctx))

	backup := filepath.Join(dir, "kb.backup.json")
	data, err := os.ReadFile(backup)
	require.NoError(t, err, "previous generation kept as backup")

	var prev map[string]domain.Resource
	require.NoError(t, json.Unmarshal(data, &prev))
	assert.Len(t, prev, 1, "backup holds the state before the last save")
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err, "corrupt store must not be fatal")

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(filepath.Join(t.TempDir(), "kb.json"))
	require.NoError(t, err)

	a := testResource("https://x.com/a", "A")
	b := testResource("https://x.com/b", "B")
	require.NoError(t, s.Put(ctx, a))
	require.NoError(t, s.Put(ctx, b))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Delete(ctx, a.ID()))
	assert.ErrorIs(t, s.Delete(ctx, a.ID()), domain.ErrNotFound)

	_, err = s.Get(ctx, a.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PutValidation(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(filepath.Join(t.TempDir(), "kb.json"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Put(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Put(ctx, &domain.Resource{}), domain.ErrInvalidInput)
}
