// Package chunker splits resource text into retrieval-sized segments.
//
// Two policies are provided. The default accumulates paragraphs (or
// sentences, when the text has no blank lines) into chunks of roughly
// the target size. The overlapping variant cuts fixed windows at the
// nearest sentence or word boundary and overlaps adjacent windows so
// context is not lost at chunk edges; it is used for long documents.
package chunker

import (
	"strings"

	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default overlap for the windowed variant.
const DefaultOverlap = 100

// longDocumentFactor decides when Chunk switches to the overlapping
// windowed policy: content longer than this many target sizes.
const longDocumentFactor = 4

// breakZone is the fraction of the window in which a sentence or word
// boundary counts as a good break point.
const breakZone = 0.7

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker splits text into chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windowed chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay well under the window or windows stop advancing.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into non-empty segments. Text at or under the
// target size comes back whole; long documents use the overlapping
// windowed policy, everything else accumulates paragraphs.
func (c *Chunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}
	if len(text) > c.chunkSize*longDocumentFactor {
		return c.ChunkOverlapping(text)
	}
	return c.chunkByStructure(text)
}

// chunkByStructure accumulates paragraphs into chunks, falling back to
// sentence accumulation when the text has no blank lines.
func (c *Chunker) chunkByStructure(text string) []string {
	chunks := accumulate(strings.Split(text, "\n\n"), "\n\n", c.chunkSize)

	// A single paragraph the size of the whole text means the split
	// found nothing to work with; retry on sentence boundaries.
	if len(chunks) <= 1 {
		chunks = accumulate(splitSentences(text), " ", c.chunkSize)
	}

	return compact(chunks)
}

// accumulate flushes the running buffer whenever adding the next part
// would push it past the size budget.
func accumulate(parts []string, sep string, size int) []string {
	var chunks []string
	var current strings.Builder

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(sep)+len(part) > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences splits text at sentence terminators, keeping the
// terminator with the sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// ChunkOverlapping cuts fixed windows, preferring a sentence boundary
// in the last 30% of the window, then a word boundary, then a hard
// cut. The next window starts overlap characters before the cut so
// adjacent chunks share a trailing/leading span.
func (c *Chunker) ChunkOverlapping(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return compact([]string{text})
	}

	zone := int(float64(c.chunkSize) * breakZone)
	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		window := text[start:end]
		cut := end

		if period := strings.LastIndex(window, ". "); period > zone {
			cut = start + period + 1
		} else if space := strings.LastIndexByte(window, ' '); space > zone {
			cut = start + space
		}

		chunks = append(chunks, text[start:cut])

		next := cut - c.overlap
		// The overlap must not rewind past the previous start or the
		// window stops advancing.
		if next <= start {
			next = cut
		}
		start = next
	}

	return compact(chunks)
}

// compact trims every chunk and drops the empty ones.
func compact(chunks []string) []string {
	out := chunks[:0]
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
