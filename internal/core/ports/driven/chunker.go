package driven

// Chunker splits text into retrieval-sized segments.
type Chunker interface {
	// Chunk splits text into non-empty segments. Text at or under the
	// target size comes back as a single chunk; empty text produces
	// no chunks.
	Chunk(text string) []string
}
