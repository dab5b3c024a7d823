// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// MetadataRenderHighlights describes the render_highlights tool.
var MetadataRenderHighlights = &mcp.Tool{
	Name: "render_highlights",
	Description: "Project an article body and mark each citation's span. Citations come either " +
		"inline or from the store by review_id. Each block is returned as segments; segments " +
		"inside a citation carry its id and note, and the citation matching active_id is " +
		"flagged active. Citations whose text can no longer be found are listed in skipped " +
		"and do not affect the rest of the rendering.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"body"},
		"properties": map[string]interface{}{
			"body": map[string]interface{}{
				"type":        "string",
				"description": "Raw article body",
			},
			"citations": map[string]interface{}{
				"type":        "array",
				"description": "Citations to highlight. Ignored when review_id is set.",
				"items":       citationSchema,
			},
			"review_id": map[string]interface{}{
				"type":        "string",
				"description": "Load the citations stored for this review",
			},
			"active_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the citation to emphasize",
			},
		},
	},
}

// InputRenderHighlights is the input for the RenderHighlights tool.
type InputRenderHighlights struct {
	Body      string              `json:"body"`
	Citations []citation.Citation `json:"citations"`
	ReviewID  string              `json:"review_id"`
	ActiveID  string              `json:"active_id"`
}

// OutputRenderHighlights is the output for the RenderHighlights tool.
type OutputRenderHighlights struct {
	Blocks  []citation.AnnotatedBlock `json:"blocks"`
	Spans   []citation.Span           `json:"spans"`
	Skipped []string                  `json:"skipped"`
}

// RenderHighlights projects the body and injects citation spans.
func (ts *Toolset) RenderHighlights(ctx context.Context, _ *mcp.CallToolRequest, input InputRenderHighlights) (*mcp.CallToolResult, OutputRenderHighlights, error) {
	if input.Body == "" {
		return nil, OutputRenderHighlights{}, fmt.Errorf("body is required")
	}

	cites := input.Citations
	if input.ReviewID != "" {
		fetched, err := ts.store.Fetch(ctx, input.ReviewID)
		if err != nil {
			ts.logger.Error("fetch citations failed", "review_id", input.ReviewID, "error", err)
			return nil, OutputRenderHighlights{}, fmt.Errorf("fetch citations for review %q: %w", input.ReviewID, err)
		}
		cites = fetched
	}

	r := citation.Highlight(citation.Project(input.Body), cites, input.ActiveID)
	for _, id := range r.Skipped {
		ts.logger.Debug("citation text not found", "review_id", input.ReviewID, "citation_id", id)
	}
	return nil, OutputRenderHighlights{
		Blocks:  r.Blocks,
		Spans:   nonNil(r.Spans),
		Skipped: nonNil(r.Skipped),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// citationSchema is the JSON schema of a citation record.
var citationSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"id", "selected_text", "start_offset", "end_offset"},
	"properties": map[string]interface{}{
		"id":             map[string]interface{}{"type": "string"},
		"selected_text":  map[string]interface{}{"type": "string"},
		"start_offset":   map[string]interface{}{"type": "integer", "minimum": 0},
		"end_offset":     map[string]interface{}{"type": "integer", "minimum": 1},
		"context_before": map[string]interface{}{"type": "string"},
		"context_after":  map[string]interface{}{"type": "string"},
		"note":           map[string]interface{}{"type": "string"},
	},
}
