// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the citation engine as MCP tools.
package tool

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// Toolset holds the dependencies of the tools that touch stored citations.
type Toolset struct {
	store   citation.Store
	logger  *slog.Logger
	baseURL string
}

// NewToolset creates a Toolset. A nil logger discards output.
func NewToolset(store citation.Store, logger *slog.Logger, baseURL string) *Toolset {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Toolset{store: store, logger: logger, baseURL: baseURL}
}

// Register adds every citation tool to server.
func Register(server *mcp.Server, ts *Toolset) {
	mcp.AddTool(server, MetadataProjectDocument, ProjectDocument)
	mcp.AddTool(server, MetadataCaptureSelection, CaptureSelection)
	mcp.AddTool(server, MetadataRenderHighlights, ts.RenderHighlights)
	mcp.AddTool(server, MetadataListCitations, ts.ListCitations)
	mcp.AddTool(server, MetadataSaveCitations, ts.SaveCitations)
	mcp.AddTool(server, MetadataFormatReference, ts.FormatReference)
}
