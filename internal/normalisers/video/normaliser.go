// Package video normalises collected video transcripts.
package video

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts video records (transcript collectors) into
// resources.
type Normaliser struct {
	chunker driven.Chunker
}

// New creates a video normaliser.
func New(ch driven.Chunker) *Normaliser {
	return &Normaliser{chunker: ch}
}

// Kind returns the source type this normaliser handles.
func (n *Normaliser) Kind() domain.SourceType {
	return domain.SourceVideo
}

// Normalise builds a Resource from a raw video record. The transcript
// is the primary content; older collector exports stored it under
// "content".
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawRecord) (*domain.Resource, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	url := raw.String("url", "source_url", "video_url")
	title := raw.String("title")
	if url == "" || title == "" {
		return nil, fmt.Errorf("video record missing url or title: %w", domain.ErrInvalidInput)
	}

	author := raw.String("uploader", "author", "channel")
	if author == "" {
		author = "Unknown"
	}

	content := raw.String("transcript", "content")

	res := &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:            domain.ContentID(url, title),
			Title:         title,
			SourceType:    domain.SourceVideo,
			SourceURL:     url,
			Author:        author,
			DateAdded:     time.Now().Format(time.RFC3339),
			DatePublished: raw.String("upload_date", "published_at", "date_published"),
			Description:   raw.String("description"),
		},
		Content: content,
	}

	for _, tag := range domain.SourceVideo.DefaultTags() {
		res.AddTag(tag)
	}
	for _, tag := range raw.Strings("tags") {
		res.AddTag(tag)
	}

	if res.Metadata.Description == "" && content != "" {
		res.Metadata.Description = domain.Preview(content, 200)
	}

	res.SetChunks(n.chunker.Chunk(content))
	res.AddNote(fmt.Sprintf("normalised video transcript on %s", res.Metadata.DateAdded))

	return res, nil
}
