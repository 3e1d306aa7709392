package driven

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// Normaliser converts a raw connector record of one source kind into a
// canonical Resource.
type Normaliser interface {
	// Kind returns the source type this normaliser handles.
	Kind() domain.SourceType

	// Normalise builds a Resource from the raw record, including the
	// content id, tags and chunks. Records missing a usable title or
	// URL return domain.ErrInvalidInput; callers skip them, ingestion
	// is best-effort over unreliable scraped payloads.
	Normalise(ctx context.Context, raw *domain.RawRecord) (*domain.Resource, error)
}

// NormaliserRegistry dispatches raw records to the normaliser for
// their kind.
type NormaliserRegistry interface {
	// Normalise builds a Resource from the raw record. Returns
	// domain.ErrUnsupportedType for kinds with no registered
	// normaliser.
	Normalise(ctx context.Context, raw *domain.RawRecord) (*domain.Resource, error)
}
