package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for knowbase resources.
const uriScheme = "knowbase://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing all stored entries.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "resources",
		Name:        "resources",
		Description: "List of all knowledge base entries",
		MIMEType:    "application/json",
	}, s.handleResourceList)

	// Template for individual entry content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "resources/{id}",
		Name:        "resource-content",
		Description: "Full text of a specific knowledge base entry",
		MIMEType:    "text/plain",
	}, s.handleResourceContent)
}

// handleResourceList returns a summary of every stored entry.
func (s *Server) handleResourceList(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	resources, err := s.ports.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	type entryInfo struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		SourceType string `json:"source_type"`
		URL        string `json:"url"`
	}

	infos := make([]entryInfo, len(resources))
	for i := range resources {
		infos[i] = entryInfo{
			ID:         resources[i].ID(),
			Title:      resources[i].Metadata.Title,
			SourceType: string(resources[i].Metadata.SourceType),
			URL:        resources[i].Metadata.SourceURL,
		}
	}
	sort.Slice(infos, func(a, b int) bool { return infos[a].ID < infos[b].ID })

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleResourceContent returns the full text of one entry.
func (s *Server) handleResourceContent(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractResourceID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	res, err := s.ports.Store.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     res.Content,
		}},
	}, nil
}

// extractResourceID extracts the entry id from a URI like
// knowbase://resources/{id}.
func extractResourceID(uri string) string {
	const prefix = uriScheme + "resources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
