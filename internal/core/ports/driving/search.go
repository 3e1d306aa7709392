package driving

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// SearchService ranks stored resources against a keyword query.
type SearchService interface {
	// Search returns ranked results, best match first. An empty query
	// or an empty store yields an empty slice, never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
