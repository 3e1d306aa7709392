// Package mcp provides an MCP (Model Context Protocol) server adapter
// for knowbase. It lets AI assistants like Claude query the local
// knowledge base.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingStatsService is returned when the stats service is not provided.
var ErrMissingStatsService = errors.New("mcp: stats service is required")
