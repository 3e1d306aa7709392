package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/services"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/article"
	"github.com/custodia-labs/knowbase-cli/internal/postprocessors/chunker"
)

// setupTestServices wires real services over an in-memory store and
// returns the store plus a cleanup that unwires everything.
func setupTestServices(t *testing.T) (*memory.Store, func()) {
	t.Helper()

	store := memory.NewStore()
	ch := chunker.New()
	registry := normalisers.Defaults(ch, article.DefaultOptions())

	search := services.NewSearchService(store)
	SetServices(Services{
		Ingest: services.NewIngestService(store, registry, ch),
		Search: search,
		Stats:  services.NewStatsService(store),
		Dedupe: services.NewDedupeService(store),
		Store:  store,
	})

	return store, func() {
		SetServices(Services{})
	}
}

// seedStore puts a minimal resource into the store.
func seedStore(t *testing.T, store *memory.Store, title, url string, kind domain.SourceType) {
	t.Helper()

	res := &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:         domain.ContentID(url, title),
			Title:      title,
			SourceURL:  url,
			SourceType: kind,
			Author:     "Someone",
			DateAdded:  "2026-08-01T10:00:00Z",
			Tags:       kind.DefaultTags(),
		},
		Content: "Some content about " + title + ".",
	}
	require.NoError(t, store.Put(context.Background(), res))
}
