package mcp

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	report *domain.StatsReport
	err    error
}

func (m *mockStatsService) Stats(_ context.Context) (*domain.StatsReport, error) {
	return m.report, m.err
}

// mockAdvisorService is a mock implementation of driving.AdvisorService.
type mockAdvisorService struct {
	advice *driving.Advice
	err    error
}

func (m *mockAdvisorService) Advise(_ context.Context, _ string) (*driving.Advice, error) {
	return m.advice, m.err
}
