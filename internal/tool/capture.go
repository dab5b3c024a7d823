// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// MetadataCaptureSelection describes the capture_selection tool.
var MetadataCaptureSelection = &mcp.Tool{
	Name: "capture_selection",
	Description: "Turn a text selection inside a projected article into a citation selection: " +
		"trimmed text, start and end offsets, and up to 50 code units of context on each side. " +
		"anchor and focus are UTF-16 code-unit offsets into the plain text returned by " +
		"project_document and may be given in either order. Returns captured=false when the " +
		"range is empty, whitespace only or outside the document.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"body", "anchor", "focus"},
		"properties": map[string]interface{}{
			"body": map[string]interface{}{
				"type":        "string",
				"description": "Raw article body",
			},
			"anchor": map[string]interface{}{
				"type":        "integer",
				"description": "Offset where the selection started",
			},
			"focus": map[string]interface{}{
				"type":        "integer",
				"description": "Offset where the selection ended",
			},
			"enable_selection": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether capture is enabled for the caller. Defaults to true.",
			},
		},
	},
}

// InputCaptureSelection is the input for the CaptureSelection tool.
type InputCaptureSelection struct {
	Body            string `json:"body"`
	Anchor          int    `json:"anchor"`
	Focus           int    `json:"focus"`
	EnableSelection *bool  `json:"enable_selection,omitempty"`
}

// OutputCaptureSelection is the output for the CaptureSelection tool.
type OutputCaptureSelection struct {
	Captured  bool                `json:"captured"`
	Selection *citation.Selection `json:"selection,omitempty"`
}

// CaptureSelection computes a selection from anchor and focus offsets.
func CaptureSelection(_ context.Context, _ *mcp.CallToolRequest, input InputCaptureSelection) (*mcp.CallToolResult, OutputCaptureSelection, error) {
	if input.Body == "" {
		return nil, OutputCaptureSelection{}, fmt.Errorf("body is required")
	}
	if input.EnableSelection != nil && !*input.EnableSelection {
		return nil, OutputCaptureSelection{}, nil
	}

	plain := citation.PlainText(citation.Project(input.Body))
	sel, ok := citation.Capture(plain, input.Anchor, input.Focus)
	if !ok {
		return nil, OutputCaptureSelection{}, nil
	}
	return nil, OutputCaptureSelection{Captured: true, Selection: &sel}, nil
}
