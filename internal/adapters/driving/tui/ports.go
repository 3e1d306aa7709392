package tui

import (
	"errors"

	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// Ports aggregates the driving port interfaces the TUI needs.
type Ports struct {
	// Search provides keyword search over the knowledge base.
	Search driving.SearchService

	// Stats provides the footer summary. Optional.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
