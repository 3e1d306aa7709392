// Package pdf normalises extracted PDF documents.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts extracted PDF records into resources. The
// extraction itself (text, page count) happens upstream; this only
// sees the already-extracted payload.
type Normaliser struct {
	chunker driven.Chunker
}

// New creates a PDF normaliser.
func New(ch driven.Chunker) *Normaliser {
	return &Normaliser{chunker: ch}
}

// Kind returns the source type this normaliser handles.
func (n *Normaliser) Kind() domain.SourceType {
	return domain.SourcePDF
}

// Normalise builds a Resource from a raw PDF record. The source URL is
// usually a local file path; a missing title falls back to the file
// stem.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawRecord) (*domain.Resource, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	path := raw.String("path", "file_path", "url", "source_url")
	if path == "" {
		return nil, fmt.Errorf("pdf record missing path: %w", domain.ErrInvalidInput)
	}

	title := raw.String("title")
	if title == "" {
		title = titleFromPath(path)
	}
	if title == "" {
		return nil, fmt.Errorf("pdf record missing title: %w", domain.ErrInvalidInput)
	}

	author := raw.String("author")
	if author == "" {
		author = "Unknown"
	}

	content := raw.String("content", "text")

	res := &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:          domain.ContentID(path, title),
			Title:       title,
			SourceType:  domain.SourcePDF,
			SourceURL:   path,
			Author:      author,
			DateAdded:   time.Now().Format(time.RFC3339),
			Description: raw.String("description"),
			PageCount:   raw.Int("page_count", "pages"),
		},
		Content: content,
	}

	for _, tag := range domain.SourcePDF.DefaultTags() {
		res.AddTag(tag)
	}
	for _, tag := range raw.Strings("tags") {
		res.AddTag(tag)
	}

	if res.Metadata.Description == "" && content != "" {
		res.Metadata.Description = domain.Preview(content, 200)
	}

	res.SetChunks(n.chunker.Chunk(content))
	res.AddNote(fmt.Sprintf("pdf text normalised on %s", res.Metadata.DateAdded))

	return res, nil
}

// titleFromPath turns "papers/attention_is_all.pdf" into
// "attention is all".
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
