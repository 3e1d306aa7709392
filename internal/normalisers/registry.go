package normalisers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/article"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/text"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/video"
)

// Registry selects a normaliser by source kind.
type Registry struct {
	byKind map[domain.SourceType]driven.Normaliser
}

// NewRegistry creates a registry from the given normalisers. Later
// entries win on kind collisions.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byKind: make(map[domain.SourceType]driven.Normaliser, len(normalisers))}
	for _, n := range normalisers {
		r.byKind[n.Kind()] = n
	}
	return r
}

// Defaults returns a registry covering every supported source kind.
func Defaults(ch driven.Chunker, articleOpts article.Options) *Registry {
	return NewRegistry(
		video.New(ch),
		article.New(ch, articleOpts),
		pdf.New(ch),
		text.New(ch),
	)
}

// ForKind returns the normaliser for a kind, or
// domain.ErrUnsupportedType.
func (r *Registry) ForKind(kind domain.SourceType) (driven.Normaliser, error) {
	n, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("normaliser for %q: %w", kind, domain.ErrUnsupportedType)
	}
	return n, nil
}

// Normalise dispatches the record to the normaliser for its kind.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawRecord) (*domain.Resource, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n, err := r.ForKind(raw.Kind)
	if err != nil {
		return nil, err
	}
	return n.Normalise(ctx, raw)
}
