package driven

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// ResourceStore persists the id -> Resource mapping.
// The canonical implementation is a single JSON file; an in-memory
// implementation exists for tests and ephemeral runs.
//
// Stores are single-writer by design. There is no cross-process
// locking; two processes writing the same file will race. Known
// limitation, not a contract to fix here.
type ResourceStore interface {
	// Get retrieves a resource by id. Returns domain.ErrNotFound when
	// absent.
	Get(ctx context.Context, id string) (*domain.Resource, error)

	// Put inserts or replaces a resource keyed by its id. Callers that
	// need insert-only semantics check existence first; ingestion never
	// overwrites implicitly.
	Put(ctx context.Context, res *domain.Resource) error

	// Delete removes a resource. Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns all resources in unspecified order.
	List(ctx context.Context) ([]domain.Resource, error)

	// Count returns the number of stored resources.
	Count(ctx context.Context) (int, error)

	// Save flushes the store to its backing medium. A failed save
	// leaves the in-memory state intact so a retry is always possible.
	Save(ctx context.Context) error
}

// HistoryStore records batch ingestion runs for auditing.
type HistoryStore interface {
	// RecordRun appends a run row.
	RecordRun(ctx context.Context, run *domain.IngestRun) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Close releases resources.
	Close() error
}
