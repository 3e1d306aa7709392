package domain

// SourceType is the closed set of places a resource can originate from.
// All type-dependent behaviour (display labels, stats bucketing, default
// tags) lives in the traits table below so that adding a source type is a
// one-place change.
type SourceType string

const (
	// SourceVideo is a video with a collected transcript.
	SourceVideo SourceType = "video"

	// SourceArticle is a scraped article (Daily.dev, Hacker News, etc).
	SourceArticle SourceType = "article"

	// SourcePDF is an ingested PDF document.
	SourcePDF SourceType = "pdf"

	// SourceText is plain text with no richer structure.
	SourceText SourceType = "text"

	// SourceUnknown is the fallback for unclassifiable records.
	SourceUnknown SourceType = "unknown"
)

// Stats bucket names. These match the persisted report shape consumed
// by the UI layer.
const (
	BucketYouTube  = "youtube"
	BucketDailyDev = "dailydev"
	BucketPDF      = "pdf"
	BucketOther    = "other"
)

// sourceTraits describes the type-dependent behaviour of a SourceType.
type sourceTraits struct {
	displayLabel string
	statsBucket  string
	defaultTags  []string
}

// sourceTraitsTable is the single exhaustive mapping from source type to
// its traits.
var sourceTraitsTable = map[SourceType]sourceTraits{
	SourceVideo: {
		displayLabel: "uploader",
		statsBucket:  BucketYouTube,
		defaultTags:  []string{"video", "education"},
	},
	SourceArticle: {
		displayLabel: "original source",
		statsBucket:  BucketDailyDev,
		defaultTags:  []string{"article", "tech"},
	},
	SourcePDF: {
		displayLabel: "author",
		statsBucket:  BucketPDF,
		defaultTags:  []string{"pdf", "document"},
	},
	SourceText: {
		displayLabel: "author",
		statsBucket:  BucketOther,
		defaultTags:  []string{"text"},
	},
	SourceUnknown: {
		displayLabel: "author",
		statsBucket:  BucketOther,
		defaultTags:  nil,
	},
}

// ParseSourceType maps a raw string to a SourceType, falling back to
// SourceUnknown for anything outside the closed set.
func ParseSourceType(s string) SourceType {
	t := SourceType(s)
	if _, ok := sourceTraitsTable[t]; ok {
		return t
	}
	return SourceUnknown
}

// Valid reports whether the type is part of the closed set.
func (t SourceType) Valid() bool {
	_, ok := sourceTraitsTable[t]
	return ok
}

// DisplayLabel returns the attribution label used when presenting a
// resource of this type ("uploader" for videos, "original source" for
// articles, "author" otherwise).
func (t SourceType) DisplayLabel() string {
	if traits, ok := sourceTraitsTable[t]; ok {
		return traits.displayLabel
	}
	return sourceTraitsTable[SourceUnknown].displayLabel
}

// StatsBucket returns the stats report bucket for this type.
func (t SourceType) StatsBucket() string {
	if traits, ok := sourceTraitsTable[t]; ok {
		return traits.statsBucket
	}
	return BucketOther
}

// DefaultTags returns a copy of the tags every resource of this type
// carries.
func (t SourceType) DefaultTags() []string {
	traits, ok := sourceTraitsTable[t]
	if !ok {
		return nil
	}
	tags := make([]string, len(traits.defaultTags))
	copy(tags, traits.defaultTags)
	return tags
}
