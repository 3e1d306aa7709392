package mcp

import (
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
)

// Ports aggregates all interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides keyword search over the knowledge base.
	Search driving.SearchService

	// Stats provides the aggregate report.
	Stats driving.StatsService

	// Advisor answers questions over the knowledge base. Optional;
	// without it the ask_advisor tool reports the LLM as unavailable.
	Advisor driving.AdvisorService

	// Store exposes stored resources for MCP resource reads. Optional.
	Store driven.ResourceStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	// Advisor and Store are optional
	return nil
}
