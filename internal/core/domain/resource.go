package domain

import (
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"strings"
)

// ContentIDLength is the number of hex characters kept from the digest.
// Twelve characters leave a narrow collision window; at the expected
// store sizes (hundreds to low thousands of resources) that is an
// accepted tradeoff for short, stable identifiers.
const ContentIDLength = 12

// descriptionPreviewLength caps the auto-generated description fallback.
const descriptionPreviewLength = 200

// ContentID derives the deterministic resource identifier from the
// source URL and title. Identical inputs always produce the same id,
// which doubles as the deduplication key.
func ContentID(sourceURL, title string) string {
	sum := md5.Sum([]byte(sourceURL + "_" + title)) //nolint:gosec // see above
	return hex.EncodeToString(sum[:])[:ContentIDLength]
}

// ResourceMetadata is the descriptive half of a resource. Field names
// match the persisted JSON schema.
type ResourceMetadata struct {
	// ID is the deterministic content id (see ContentID).
	ID string `json:"id"`

	// Title is the human-readable title. Never empty for stored resources.
	Title string `json:"title"`

	// SourceType categorises where the resource came from.
	SourceType SourceType `json:"source_type"`

	// SourceURL is the origin locator (web URL or local file path).
	SourceURL string `json:"source_url"`

	// Author is the attribution string. For scraped articles this may be
	// the scraping platform rather than the writer.
	Author string `json:"author"`

	// OriginalSource is the upstream publisher for articles (e.g.
	// "TechCrunch"), distinct from Author.
	OriginalSource string `json:"original_source,omitempty"`

	// DateAdded is the ISO-8601 ingestion timestamp. Immutable.
	DateAdded string `json:"date_added"`

	// DatePublished is the upstream publication timestamp, if known.
	DatePublished string `json:"date_published,omitempty"`

	// Description is a short summary, or a truncated content prefix.
	Description string `json:"description"`

	// Tags always include the source-type defaults plus any tags carried
	// by the raw record and engagement-derived buckets.
	Tags []string `json:"tags"`

	// Engagement metrics (articles). Zero when unavailable.
	Upvotes  int `json:"upvotes,omitempty"`
	Comments int `json:"comments,omitempty"`
	ReadTime int `json:"read_time,omitempty"`

	// PageCount is set for PDFs when the extractor reports it.
	PageCount int `json:"page_count,omitempty"`

	// QualityScore is a recomputable [0,1] engagement heuristic. Never
	// authoritative input.
	QualityScore float64 `json:"quality_score,omitempty"`

	// DuplicateCount and MergedFrom record the outcome of an explicit
	// batch merge. Empty for resources that never went through one.
	DuplicateCount int      `json:"duplicate_count,omitempty"`
	MergedFrom     []string `json:"merged_from,omitempty"`
}

// Resource is the canonical unit of knowledge after normalisation.
// Its JSON encoding is exactly the persisted store entry shape.
type Resource struct {
	Metadata ResourceMetadata `json:"metadata"`

	// Content is the full extracted text. May be empty when only
	// metadata was available.
	Content string `json:"content"`

	// Chunks are ordered retrieval-sized substrings of Content.
	Chunks []string `json:"chunks"`

	// ChunkCount is len(Chunks), persisted for legacy readers.
	ChunkCount int `json:"chunk_count"`

	// ProcessingNotes is an append-only audit trail.
	ProcessingNotes []string `json:"processing_notes"`
}

// ID returns the resource's content id.
func (r *Resource) ID() string {
	return r.Metadata.ID
}

// AddTag appends a tag unless it is empty or already present.
func (r *Resource) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || r.HasTag(tag) {
		return
	}
	r.Metadata.Tags = append(r.Metadata.Tags, tag)
}

// HasTag reports whether the tag is present (exact match).
func (r *Resource) HasTag(tag string) bool {
	for _, t := range r.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddNote appends a processing note.
func (r *Resource) AddNote(note string) {
	if note == "" {
		return
	}
	r.ProcessingNotes = append(r.ProcessingNotes, note)
}

// SetChunks replaces the chunk list and keeps ChunkCount consistent.
func (r *Resource) SetChunks(chunks []string) {
	r.Chunks = chunks
	r.ChunkCount = len(chunks)
}

// EffectiveChunkCount returns ChunkCount, estimating one chunk per 500
// characters for legacy records that predate chunking. Records with
// content always report at least one chunk.
func (r *Resource) EffectiveChunkCount() int {
	if r.ChunkCount > 0 {
		return r.ChunkCount
	}
	if len(r.Chunks) > 0 {
		return len(r.Chunks)
	}
	if r.Content == "" {
		return 0
	}
	n := len(r.Content) / 500
	if n < 1 {
		n = 1
	}
	return n
}

// Uploader returns the display attribution for this resource: the
// author for videos, the original source (falling back to author) for
// articles. This distinction reflects "who made it" vs "who published
// it" and must survive into search results.
func (r *Resource) Uploader() string {
	if r.Metadata.SourceType == SourceArticle && r.Metadata.OriginalSource != "" {
		return r.Metadata.OriginalSource
	}
	if r.Metadata.Author != "" {
		return r.Metadata.Author
	}
	return "Unknown"
}

// DescriptionOrPreview returns the description, falling back to a
// truncated content prefix.
func (r *Resource) DescriptionOrPreview() string {
	if r.Metadata.Description != "" {
		return r.Metadata.Description
	}
	return Preview(r.Content, descriptionPreviewLength)
}

// Preview returns at most max characters of s, appending an ellipsis
// when truncated.
func Preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
