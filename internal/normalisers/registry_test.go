package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/normalisers/article"
	"github.com/custodia-labs/knowbase-cli/internal/postprocessors/chunker"
)

func TestDefaults_CoversAllKinds(t *testing.T) {
	r := Defaults(chunker.New(), article.DefaultOptions())

	for _, kind := range []domain.SourceType{
		domain.SourceVideo,
		domain.SourceArticle,
		domain.SourcePDF,
		domain.SourceText,
	} {
		n, err := r.ForKind(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, n.Kind())
	}
}

func TestRegistry_UnsupportedKind(t *testing.T) {
	r := Defaults(chunker.New(), article.DefaultOptions())

	_, err := r.ForKind(domain.SourceUnknown)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Normalise(t *testing.T) {
	r := Defaults(chunker.New(), article.DefaultOptions())

	t.Run("dispatches on kind", func(t *testing.T) {
		raw := &domain.RawRecord{
			Kind: domain.SourceText,
			Fields: map[string]any{
				"url":     "file:///notes/go.txt",
				"title":   "Go Notes",
				"content": "Channels are typed conduits.",
			},
		}
		res, err := r.Normalise(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, domain.SourceText, res.Metadata.SourceType)
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := r.Normalise(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
