package domain

// SourceBucket holds per-source-type counts in a stats report.
type SourceBucket struct {
	Count  int `json:"count"`
	Chunks int `json:"chunks"`
}

// RecentAddition is a summary line in the recency-ordered view.
type RecentAddition struct {
	Title      string     `json:"title"`
	SourceType SourceType `json:"source_type"`
	Author     string     `json:"author"`
	DateAdded  string     `json:"date_added"`
}

// StatsReport is a read-only derived view over the knowledge store.
// It is recomputed on demand; stores stay small enough that caching
// is not worth the staleness risk.
type StatsReport struct {
	TotalResources int `json:"total_resources"`
	TotalChunks    int `json:"total_chunks"`

	// BySource buckets resources into youtube/dailydev/pdf/other.
	BySource map[string]SourceBucket `json:"by_source"`

	// ByAuthor and ByTags are frequency maps.
	ByAuthor map[string]int `json:"by_author"`
	ByTags   map[string]int `json:"by_tags"`

	// RecentAdditions lists the most recently ingested resources,
	// newest first.
	RecentAdditions []RecentAddition `json:"recent_additions"`

	// Topics lists all resource titles.
	Topics []string `json:"topics"`
}
