package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()

	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Stats == nil {
		ports.Stats = &mockStatsService{report: &domain.StatsReport{}}
	}

	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{
					Content: "the matching snippet",
					Metadata: domain.ResultMetadata{
						Title:      "Test Resource",
						URL:        "https://example.com/r",
						Uploader:   "Someone",
						SourceType: domain.SourceArticle,
						Tags:       []string{"article"},
					},
					Score: 7,
				},
			},
		}

		server := newTestServer(t, &Ports{Search: mockSearch})

		input := SearchInput{Query: "test", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "Test Resource", output.Results[0].Title)
		assert.Equal(t, "https://example.com/r", output.Results[0].URL)
		assert.Equal(t, "article", output.Results[0].SourceType)
		assert.Equal(t, 7, output.Results[0].Score)
		assert.Equal(t, "the matching snippet", output.Results[0].Content)
	})

	t.Run("passes source filter through", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{Search: mockSearch})

		input := SearchInput{Query: "test", Source: "video"}
		_, _, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.SourceVideo, mockSearch.lastOpts.Source)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}
		server := newTestServer(t, &Ports{Search: mockSearch})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleStats(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report summary", func(t *testing.T) {
		mockStats := &mockStatsService{
			report: &domain.StatsReport{
				TotalResources: 2,
				TotalChunks:    5,
				BySource: map[string]domain.SourceBucket{
					domain.BucketYouTube: {Count: 2, Chunks: 5},
				},
				RecentAdditions: []domain.RecentAddition{
					{Title: "Newest"},
					{Title: "Older"},
				},
			},
		}

		server := newTestServer(t, &Ports{Stats: mockStats})

		_, output, err := server.handleStats(ctx, nil, StatsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.TotalResources)
		assert.Equal(t, 5, output.TotalChunks)
		assert.Equal(t, []string{"Newest", "Older"}, output.RecentTitles)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Stats: &mockStatsService{err: errors.New("boom")}})

		_, _, err := server.handleStats(ctx, nil, StatsInput{})
		assert.Error(t, err)
	})
}

func TestServer_handleAdvisor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with source titles", func(t *testing.T) {
		mockAdvisor := &mockAdvisorService{
			advice: &driving.Advice{
				Answer: "Use Raft.",
				Sources: []domain.SearchResult{
					{Metadata: domain.ResultMetadata{Title: "Raft Explained"}},
				},
			},
		}

		server := newTestServer(t, &Ports{Advisor: mockAdvisor})

		_, output, err := server.handleAdvisor(ctx, nil, AdvisorInput{Question: "consensus?"})

		require.NoError(t, err)
		assert.Equal(t, "Use Raft.", output.Answer)
		assert.Equal(t, []string{"Raft Explained"}, output.Sources)
	})

	t.Run("no advisor configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleAdvisor(ctx, nil, AdvisorInput{Question: "q"})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}
