package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit caps results when the caller gives no limit.
const DefaultSearchLimit = 5

// snippetLength caps the content-prefix fallback snippet.
const snippetLength = 500

// snippetChunkWindow is how many leading chunks are considered when
// selecting the snippet.
const snippetChunkWindow = 3

// Weights are the per-field multipliers for keyword scoring. Title
// matches outweigh tag matches, which outweigh content matches.
type Weights struct {
	Title   int
	Tag     int
	Content int
}

// DefaultWeights returns the standard 3/2/1 weighting.
func DefaultWeights() Weights {
	return Weights{Title: 3, Tag: 2, Content: 1}
}

// SearchService ranks stored resources against a keyword query. The
// whole store is scanned per query; stores are small enough that an
// index would cost more in freshness bookkeeping than it saves.
type SearchService struct {
	store   driven.ResourceStore
	weights Weights
}

// SearchOption configures a SearchService.
type SearchOption func(*SearchService)

// WithWeights overrides the scoring weights.
func WithWeights(w Weights) SearchOption {
	return func(s *SearchService) { s.weights = w }
}

// NewSearchService creates a search service.
func NewSearchService(store driven.ResourceStore, opts ...SearchOption) *SearchService {
	s := &SearchService{
		store:   store,
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns ranked results, best match first.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Whitespace tokenisation, lowercased. No stemming or stopword
	// removal; this is a heuristic, not IR-grade retrieval.
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	resources, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	logger.Debug("Scanning %d resources, limit %d", len(resources), limit)

	results := make([]domain.SearchResult, 0, limit)

	for i := range resources {
		res := &resources[i]

		if opts.Source != "" && res.Metadata.SourceType != opts.Source {
			continue
		}

		score := s.score(res, words)
		if score <= 0 {
			continue
		}

		results = append(results, domain.SearchResult{
			Content: s.snippet(res, words),
			Metadata: domain.ResultMetadata{
				Title:      res.Metadata.Title,
				URL:        res.Metadata.SourceURL,
				Uploader:   res.Uploader(),
				SourceType: res.Metadata.SourceType,
				Author:     res.Metadata.Author,
				DateAdded:  res.Metadata.DateAdded,
				Tags:       res.Metadata.Tags,
			},
			Distance: 1.0 - float64(score)/100.0,
			Score:    score,
		})
	}

	// Stable sort keeps store order among equal scores, so repeated
	// queries return the same ranking.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > limit {
		results = results[:limit]
	}

	logger.Info("Search %q: %d results", query, len(results))
	return results, nil
}

// score sums the weighted occurrence counts of every query word for
// one resource. Words are matched as substrings of the lowercased
// title, content and tags.
func (s *SearchService) score(res *domain.Resource, words []string) int {
	titleLower := strings.ToLower(res.Metadata.Title)
	contentLower := strings.ToLower(res.Content)

	score := 0
	for _, word := range words {
		score += s.weights.Title * strings.Count(titleLower, word)
		score += s.weights.Content * strings.Count(contentLower, word)

		for _, tag := range res.Metadata.Tags {
			if strings.Contains(strings.ToLower(tag), word) {
				score += s.weights.Tag
			}
		}
	}

	return score
}

// snippet picks the display text: the first of the leading chunks that
// contains any query word, else the first chunk, else a content prefix.
func (s *SearchService) snippet(res *domain.Resource, words []string) string {
	window := res.Chunks
	if len(window) > snippetChunkWindow {
		window = window[:snippetChunkWindow]
	}

	for _, chunk := range window {
		chunkLower := strings.ToLower(chunk)
		for _, word := range words {
			if strings.Contains(chunkLower, word) {
				return chunk
			}
		}
	}

	if len(res.Chunks) > 0 {
		return res.Chunks[0]
	}
	return domain.Preview(res.Content, snippetLength)
}
