package driving

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// IngestReport summarises a batch ingestion.
type IngestReport struct {
	// RunID identifies the run in the audit history.
	RunID string

	// Added, Skipped and Failed count per-record outcomes.
	Added   int
	Skipped int
	Failed  int

	// AddedIDs lists the content ids of newly stored resources.
	AddedIDs []string
}

// ResourcePatch carries partial updates for an existing resource.
// Nil pointer fields are left untouched.
type ResourcePatch struct {
	Title       *string
	Content     *string
	Description *string
	Author      *string

	// Tags, when non-nil, are appended (deduplicated).
	Tags []string
}

// IngestService normalises raw records and stores them.
type IngestService interface {
	// IngestRecord normalises and stores a single record. Returns the
	// new content id, or domain.ErrAlreadyExists for an exact-id
	// duplicate (a no-op) and domain.ErrInvalidInput for records that
	// cannot be normalised. The caller decides whether to save.
	IngestRecord(ctx context.Context, raw *domain.RawRecord) (string, error)

	// IngestBatch ingests records best-effort, autosaving periodically
	// and always saving at the end. Individual record failures are
	// counted, never fatal. source labels the batch in the history.
	IngestBatch(ctx context.Context, source string, records []domain.RawRecord) (*IngestReport, error)

	// Update applies a partial update, regenerating chunks when the
	// content changes, and saves. Returns domain.ErrNotFound for
	// unknown ids.
	Update(ctx context.Context, id string, patch ResourcePatch) error

	// Remove deletes a resource and saves. Returns domain.ErrNotFound
	// for unknown ids.
	Remove(ctx context.Context, id string) error
}
