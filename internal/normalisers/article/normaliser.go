// Package article normalises scraped article records (Daily.dev,
// Hacker News, Reddit, Dev.to, GitHub Trending, Lobsters).
package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Options holds the engagement bucketing thresholds. The exact cutoffs
// are tuning constants; only their relative order is load-bearing
// (more engagement implies a stronger tag).
type Options struct {
	// PopularUpvotes and HighlyUpvoted bucket the upvote count.
	PopularUpvotes int
	HighlyUpvoted  int

	// Discussed and HighlyDiscussed bucket the comment count.
	Discussed       int
	HighlyDiscussed int

	// MediumReadMinutes and LongReadMinutes bucket the read time.
	// Anything positive below MediumReadMinutes is a quick read.
	MediumReadMinutes int
	LongReadMinutes   int
}

// DefaultOptions are the thresholds the original scrapers shipped with.
func DefaultOptions() Options {
	return Options{
		PopularUpvotes:    10,
		HighlyUpvoted:     50,
		Discussed:         3,
		HighlyDiscussed:   10,
		MediumReadMinutes: 5,
		LongReadMinutes:   10,
	}
}

// applyDefaults fills zero thresholds so a partially configured
// Options value stays monotonic.
func (o Options) applyDefaults() Options {
	def := DefaultOptions()
	if o.PopularUpvotes <= 0 {
		o.PopularUpvotes = def.PopularUpvotes
	}
	if o.HighlyUpvoted <= o.PopularUpvotes {
		o.HighlyUpvoted = def.HighlyUpvoted
	}
	if o.Discussed <= 0 {
		o.Discussed = def.Discussed
	}
	if o.HighlyDiscussed <= o.Discussed {
		o.HighlyDiscussed = def.HighlyDiscussed
	}
	if o.MediumReadMinutes <= 0 {
		o.MediumReadMinutes = def.MediumReadMinutes
	}
	if o.LongReadMinutes <= o.MediumReadMinutes {
		o.LongReadMinutes = def.LongReadMinutes
	}
	return o
}

// Normaliser converts scraped article payloads into resources.
type Normaliser struct {
	chunker driven.Chunker
	opts    Options
	now     func() time.Time
}

// New creates an article normaliser.
func New(ch driven.Chunker, opts Options) *Normaliser {
	return &Normaliser{
		chunker: ch,
		opts:    opts.applyDefaults(),
		now:     time.Now,
	}
}

// Kind returns the source type this normaliser handles.
func (n *Normaliser) Kind() domain.SourceType {
	return domain.SourceArticle
}

// Normalise builds a Resource from a raw article record. Field names
// vary by scraper (readTime vs read_time, numComments vs comments);
// the accessors reconcile them here, once.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawRecord) (*domain.Resource, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	url := raw.String("url", "permalink", "source_url", "link")
	title := raw.String("title")
	if url == "" || title == "" {
		return nil, fmt.Errorf("article record missing url or title: %w", domain.ErrInvalidInput)
	}

	// Content priority: full content, then summary, then description,
	// then the title alone.
	content := raw.String("content", "summary", "description")
	if content == "" {
		content = title
	}

	author := raw.String("author", "platform")
	if author == "" {
		author = "Unknown"
	}

	upvotes := raw.Int("upvotes", "points", "score")
	comments := raw.Int("numComments", "comments", "num_comments")
	readTime := raw.Int("readTime", "read_time", "read_time_minutes")

	res := &domain.Resource{
		Metadata: domain.ResourceMetadata{
			ID:             domain.ContentID(url, title),
			Title:          title,
			SourceType:     domain.SourceArticle,
			SourceURL:      url,
			Author:         author,
			OriginalSource: raw.String("source", "source_name", "original_source"),
			DateAdded:      n.now().Format(time.RFC3339),
			DatePublished:  raw.String("createdAt", "publishedAt", "date_published"),
			Description:    raw.String("summary", "description"),
			Upvotes:        upvotes,
			Comments:       comments,
			ReadTime:       readTime,
			QualityScore:   n.qualityScore(upvotes, comments, readTime),
		},
		Content: content,
	}

	for _, tag := range domain.SourceArticle.DefaultTags() {
		res.AddTag(tag)
	}
	res.AddTag("daily.dev")
	for _, tag := range raw.Strings("tags") {
		res.AddTag(strings.ToLower(tag))
	}
	if src := res.Metadata.OriginalSource; src != "" {
		res.AddTag("source:" + strings.ToLower(src))
	}
	n.addEngagementTags(res, upvotes, comments, readTime)
	n.addRecencyTags(res)

	if res.Metadata.Description == "" {
		res.Metadata.Description = domain.Preview(content, 200)
	}

	res.SetChunks(n.chunker.Chunk(content))
	res.AddNote(fmt.Sprintf("scraped article normalised on %s", res.Metadata.DateAdded))

	return res, nil
}

// addEngagementTags buckets upvotes, comments and read time into
// stable tags. Same input, same tags.
func (n *Normaliser) addEngagementTags(res *domain.Resource, upvotes, comments, readTime int) {
	switch {
	case upvotes >= n.opts.HighlyUpvoted:
		res.AddTag("highly_upvoted")
	case upvotes >= n.opts.PopularUpvotes:
		res.AddTag("popular")
	}

	switch {
	case comments >= n.opts.HighlyDiscussed:
		res.AddTag("highly_discussed")
	case comments >= n.opts.Discussed:
		res.AddTag("discussed")
	}

	switch {
	case readTime >= n.opts.LongReadMinutes:
		res.AddTag("long_read")
	case readTime >= n.opts.MediumReadMinutes:
		res.AddTag("medium_read")
	case readTime > 0:
		res.AddTag("quick_read")
	}
}

// addRecencyTags tags articles published within the last day, week or
// month.
func (n *Normaliser) addRecencyTags(res *domain.Resource) {
	published := res.Metadata.DatePublished
	if published == "" {
		return
	}
	ts, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return
	}

	age := n.now().Sub(ts)
	switch {
	case age <= 24*time.Hour:
		res.AddTag("recent")
	case age <= 7*24*time.Hour:
		res.AddTag("this_week")
	case age <= 30*24*time.Hour:
		res.AddTag("this_month")
	}
}

// qualityScore is a recomputable [0,1] engagement heuristic: a 0.5
// base, diminishing bucketed increments per metric, and a flat bonus
// when all three signals are strong at once.
func (n *Normaliser) qualityScore(upvotes, comments, readTime int) float64 {
	score := 0.5

	for _, cutoff := range []int{5, 10, 25, 50} {
		if upvotes >= cutoff {
			score += 0.05
		}
	}
	if upvotes >= 100 {
		score += 0.1
	}

	for _, cutoff := range []int{2, 5} {
		if comments >= cutoff {
			score += 0.025
		}
	}
	for _, cutoff := range []int{10, 20} {
		if comments >= cutoff {
			score += 0.05
		}
	}

	for _, cutoff := range []int{3, 5} {
		if readTime >= cutoff {
			score += 0.025
		}
	}
	for _, cutoff := range []int{10, 15} {
		if readTime >= cutoff {
			score += 0.05
		}
	}

	if upvotes >= 10 && comments >= 3 && readTime >= 5 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
