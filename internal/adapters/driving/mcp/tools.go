package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_knowledge tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query to find knowledge resources"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	Source string `json:"source,omitempty" jsonschema:"restrict to one source type: video, article, pdf or text"`
}

// SearchOutput is the output schema for the search_knowledge tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Uploader   string   `json:"uploader"`
	SourceType string   `json:"source_type"`
	Tags       []string `json:"tags,omitempty"`
	Score      int      `json:"score"`
	Content    string   `json:"content,omitempty"`
}

// StatsInput is the input schema for the get_stats tool. No fields.
type StatsInput struct{}

// StatsOutput is the output schema for the get_stats tool.
type StatsOutput struct {
	TotalResources int                            `json:"total_resources"`
	TotalChunks    int                            `json:"total_chunks"`
	BySource       map[string]domain.SourceBucket `json:"by_source"`
	RecentTitles   []string                       `json:"recent_titles"`
}

// AdvisorInput is the input schema for the ask_advisor tool.
type AdvisorInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the knowledge base"`
}

// AdvisorOutput is the output schema for the ask_advisor tool.
type AdvisorOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the personal knowledge base by keyword",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get aggregate statistics about the knowledge base",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_advisor",
		Description: "Ask a question answered from saved knowledge using a local LLM",
	}, s.handleAdvisor)
}

// handleSearch handles the search_knowledge tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit}
	if input.Source != "" {
		opts.Source = domain.ParseSourceType(input.Source)
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Title:      results[i].Metadata.Title,
			URL:        results[i].Metadata.URL,
			Uploader:   results[i].Metadata.Uploader,
			SourceType: string(results[i].Metadata.SourceType),
			Tags:       results[i].Metadata.Tags,
			Score:      results[i].Score,
			Content:    results[i].Content,
		}
	}

	return nil, output, nil
}

// handleStats handles the get_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	report, err := s.ports.Stats.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		TotalResources: report.TotalResources,
		TotalChunks:    report.TotalChunks,
		BySource:       report.BySource,
		RecentTitles:   make([]string, 0, len(report.RecentAdditions)),
	}
	for _, recent := range report.RecentAdditions {
		output.RecentTitles = append(output.RecentTitles, recent.Title)
	}

	return nil, output, nil
}

// handleAdvisor handles the ask_advisor tool invocation.
func (s *Server) handleAdvisor(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AdvisorInput,
) (*mcp.CallToolResult, AdvisorOutput, error) {
	if s.ports.Advisor == nil {
		return nil, AdvisorOutput{}, domain.ErrLLMUnavailable
	}

	advice, err := s.ports.Advisor.Advise(ctx, input.Question)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return nil, AdvisorOutput{}, domain.ErrLLMUnavailable
		}
		return nil, AdvisorOutput{}, err
	}

	output := AdvisorOutput{Answer: advice.Answer}
	for _, src := range advice.Sources {
		output.Sources = append(output.Sources, src.Metadata.Title)
	}

	return nil, output, nil
}
