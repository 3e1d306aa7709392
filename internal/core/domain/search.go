package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the default.
	Limit int

	// Source restricts results to a single source type. Empty means all.
	Source SourceType
}

// ResultMetadata is the display metadata attached to a search result.
type ResultMetadata struct {
	// Title is the resource title.
	Title string `json:"title"`

	// URL is the resource's source locator.
	URL string `json:"url"`

	// Uploader is the type-aware attribution: the author for videos,
	// the original publisher for articles.
	Uploader string `json:"uploader"`

	// SourceType is the resource's source type.
	SourceType SourceType `json:"source_type"`

	// Author is the raw attribution string.
	Author string `json:"author"`

	// DateAdded is the ingestion timestamp.
	DateAdded string `json:"date_added"`

	// Tags are the resource's tags.
	Tags []string `json:"tags"`
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	// Content is the selected snippet (the best matching chunk, or a
	// content prefix when the resource has no chunks).
	Content string `json:"content"`

	// Metadata describes the matched resource.
	Metadata ResultMetadata `json:"metadata"`

	// Distance is the sort key: 1.0 - score/100, ascending is better.
	// Scores above 100 produce negative distances; only relative order
	// matters, so no clamping is applied.
	Distance float64 `json:"distance"`

	// Score is the raw keyword score the distance was derived from.
	Score int `json:"score"`
}
