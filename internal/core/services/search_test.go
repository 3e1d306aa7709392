package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

func seedResource(t *testing.T, store *memory.Store, res domain.Resource) {
	t.Helper()

	if res.Metadata.ID == "" {
		res.Metadata.ID = domain.ContentID(res.Metadata.SourceURL, res.Metadata.Title)
	}
	require.NoError(t, store.Put(context.Background(), &res))
}

func TestSearchService_RanksTitleAboveContent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Kubernetes Networking Deep Dive",
			SourceURL:  "https://example.com/k8s-net",
			SourceType: domain.SourceArticle,
		},
		Content: "An overview of pod networking.",
	})
	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Cloud Infrastructure Notes",
			SourceURL:  "https://example.com/cloud",
			SourceType: domain.SourceArticle,
		},
		Content: "Some notes mentioning kubernetes once.",
	})

	results, err := NewSearchService(store).Search(ctx, "kubernetes", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Title hit (weight 3) outranks content hit (weight 1).
	assert.Equal(t, "Kubernetes Networking Deep Dive", results[0].Metadata.Title)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestSearchService_ScoresTagsAsSubstrings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Untitled Notes",
			SourceURL:  "https://example.com/n",
			SourceType: domain.SourceText,
			Tags:       []string{"golang", "go-tooling"},
		},
		Content: "Nothing relevant here.",
	})

	results, err := NewSearchService(store).Search(ctx, "go", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Both tags contain "go" as a substring, 2 points each.
	assert.Equal(t, 4, results[0].Score)
}

func TestSearchService_TokenisesMultiWordQueries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Pod Networking Guide",
			SourceURL:  "https://example.com/pods",
			SourceType: domain.SourceArticle,
		},
		Content: "Networking between pods.",
	})
	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Service Mesh Basics",
			SourceURL:  "https://example.com/mesh",
			SourceType: domain.SourceArticle,
		},
		Content: "Only networking appears here.",
	})

	results, err := NewSearchService(store).Search(ctx, "pod networking", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Each word scores independently: the first resource matches both
	// words, the second only one.
	assert.Equal(t, "Pod Networking Guide", results[0].Metadata.Title)
	// "pod": title 3 + content 1 ("pods" contains it). "networking":
	// title 3 + content 1. Total 8.
	assert.Equal(t, 8, results[0].Score)
	assert.Equal(t, 1, results[1].Score)
}

func TestSearchService_DistanceFromScore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "redis redis redis",
			SourceURL:  "https://example.com/r",
			SourceType: domain.SourceText,
		},
	})

	results, err := NewSearchService(store).Search(ctx, "redis", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 9, results[0].Score)
	assert.InDelta(t, 1.0-9.0/100.0, results[0].Distance, 1e-9)
}

func TestSearchService_SnippetPrefersMatchingChunk(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	res := domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Database Internals",
			SourceURL:  "https://example.com/db",
			SourceType: domain.SourceText,
		},
		Content: "chunk one text. chunk two mentions postgres. chunk three text.",
	}
	res.SetChunks([]string{
		"chunk one text.",
		"chunk two mentions postgres.",
		"chunk three text.",
	})
	seedResource(t, store, res)

	results, err := NewSearchService(store).Search(ctx, "postgres", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "chunk two mentions postgres.", results[0].Content)
}

func TestSearchService_SnippetFallsBackToFirstChunk(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	res := domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Grafana Dashboards",
			SourceURL:  "https://example.com/graf",
			SourceType: domain.SourceText,
		},
		Content: "intro text",
	}
	// The match is only in the title; no chunk contains the query.
	res.SetChunks([]string{"intro text", "more text"})
	seedResource(t, store, res)

	results, err := NewSearchService(store).Search(ctx, "grafana", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "intro text", results[0].Content)
}

func TestSearchService_FiltersBySource(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Docker Video",
			SourceURL:  "https://example.com/v",
			SourceType: domain.SourceVideo,
		},
	})
	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Docker Article",
			SourceURL:  "https://example.com/a",
			SourceType: domain.SourceArticle,
		},
	})

	results, err := NewSearchService(store).Search(ctx, "docker",
		domain.SearchOptions{Source: domain.SourceVideo})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Docker Video", results[0].Metadata.Title)
}

func TestSearchService_EmptyQueryAndNoMatches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewSearchService(store)

	results, err := svc.Search(ctx, "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Something",
			SourceURL:  "https://example.com/s",
			SourceType: domain.SourceText,
		},
	})

	results, err = svc.Search(ctx, "nomatchanywhere", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_LimitAppliedAfterRanking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	// Weak match: one content occurrence.
	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "Misc",
			SourceURL:  "https://example.com/misc",
			SourceType: domain.SourceText,
		},
		Content: "mentions etcd once",
	})
	// Strong match: title occurrence.
	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:      "etcd Operations Guide",
			SourceURL:  "https://example.com/etcd",
			SourceType: domain.SourceText,
		},
	})

	results, err := NewSearchService(store).Search(ctx, "etcd", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "etcd Operations Guide", results[0].Metadata.Title)
}

func TestSearchService_UploaderUsesOriginalSourceForArticles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedResource(t, store, domain.Resource{
		Metadata: domain.ResourceMetadata{
			Title:          "WebAssembly on the Edge",
			SourceURL:      "https://example.com/wasm",
			SourceType:     domain.SourceArticle,
			Author:         "daily.dev",
			OriginalSource: "TechCrunch",
		},
	})

	results, err := NewSearchService(store).Search(ctx, "webassembly", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TechCrunch", results[0].Metadata.Uploader)
	assert.Equal(t, "daily.dev", results[0].Metadata.Author)
}
