// Package text normalises plain text records. It is the fallback for
// payloads with no richer structure.
package text

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts plain text records into resources.
type Normaliser struct {
	chunker driven.Chunker
}

// New creates a plain text normaliser.
func New(ch driven.Chunker) *Normaliser {
	return &Normaliser{chunker: ch}
}

// Kind returns the source type this normaliser handles.
func (n *Normaliser) Kind() domain.SourceType {
	return domain.SourceText
}

// Normalise builds a Resource from a raw text record.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawRecord) (*domain.Resource, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	url := raw.String("url", "source_url", "path")
	title := raw.String("title")
	if url == "" || title == "" {
		return nil, fmt.Errorf("text record missing url or title: %w", domain.ErrInvalidInput)
	}

	author := raw.String("author")
	if author == "" {
		author = "Unknown"
	}

	content := raw.String("content", "text", "body")

	res := &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:          domain.ContentID(url, title),
			Title:       title,
			SourceType:  domain.SourceText,
			SourceURL:   url,
			Author:      author,
			DateAdded:   time.Now().Format(time.RFC3339),
			Description: raw.String("description"),
		},
		Content: content,
	}

	for _, tag := range domain.SourceText.DefaultTags() {
		res.AddTag(tag)
	}
	for _, tag := range raw.Strings("tags") {
		res.AddTag(tag)
	}

	if res.Metadata.Description == "" && content != "" {
		res.Metadata.Description = domain.Preview(content, 200)
	}

	res.SetChunks(n.chunker.Chunk(content))
	res.AddNote(fmt.Sprintf("text normalised on %s", res.Metadata.DateAdded))

	return res, nil
}
