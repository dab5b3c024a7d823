// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// MetadataListCitations describes the list_citations tool.
var MetadataListCitations = &mcp.Tool{
	Name:        "list_citations",
	Description: "List the citations stored for a review, ordered by start offset.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"review_id"},
		"properties": map[string]interface{}{
			"review_id": map[string]interface{}{
				"type":        "string",
				"description": "Review identifier",
			},
		},
	},
}

// MetadataSaveCitations describes the save_citations tool.
var MetadataSaveCitations = &mcp.Tool{
	Name: "save_citations",
	Description: "Replace the citations stored for a review with the given batch. Every citation " +
		"must satisfy end_offset - start_offset == length of selected_text in UTF-16 code " +
		"units, with at most 50 code units of context per side. An empty batch clears the review.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"review_id", "citations"},
		"properties": map[string]interface{}{
			"review_id": map[string]interface{}{
				"type":        "string",
				"description": "Review identifier",
			},
			"citations": map[string]interface{}{
				"type":  "array",
				"items": citationSchema,
			},
		},
	},
}

// InputListCitations is the input for the ListCitations tool.
type InputListCitations struct {
	ReviewID string `json:"review_id"`
}

// InputSaveCitations is the input for the SaveCitations tool.
type InputSaveCitations struct {
	ReviewID  string              `json:"review_id"`
	Citations []citation.Citation `json:"citations"`
}

// OutputCitations is the output for ListCitations and SaveCitations.
type OutputCitations struct {
	ReviewID  string              `json:"review_id"`
	Count     int                 `json:"count"`
	Citations []citation.Citation `json:"citations"`
}

func (ts *Toolset) ListCitations(ctx context.Context, _ *mcp.CallToolRequest, input InputListCitations) (*mcp.CallToolResult, OutputCitations, error) {
	if input.ReviewID == "" {
		return nil, OutputCitations{}, fmt.Errorf("review_id is required")
	}
	cites, err := ts.store.Fetch(ctx, input.ReviewID)
	if err != nil {
		ts.logger.Error("fetch citations failed", "review_id", input.ReviewID, "error", err)
		return nil, OutputCitations{}, fmt.Errorf("fetch citations for review %q: %w", input.ReviewID, err)
	}
	return nil, OutputCitations{ReviewID: input.ReviewID, Count: len(cites), Citations: nonNil(cites)}, nil
}

func (ts *Toolset) SaveCitations(ctx context.Context, _ *mcp.CallToolRequest, input InputSaveCitations) (*mcp.CallToolResult, OutputCitations, error) {
	if input.ReviewID == "" {
		return nil, OutputCitations{}, fmt.Errorf("review_id is required")
	}
	if err := citation.Replace(ctx, ts.store, input.ReviewID, input.Citations); err != nil {
		ts.logger.Warn("save citations failed", "review_id", input.ReviewID, "error", err)
		return nil, OutputCitations{}, err
	}
	ts.logger.Info("citations saved", "review_id", input.ReviewID, "count", len(input.Citations))
	sorted := citation.SortByOffset(input.Citations)
	return nil, OutputCitations{ReviewID: input.ReviewID, Count: len(sorted), Citations: sorted}, nil
}
