// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// MetadataProjectDocument describes the project_document tool.
var MetadataProjectDocument = &mcp.Tool{
	Name: "project_document",
	Description: "Project an article body written in markup-lite (## headings, - list items, " +
		"plain paragraphs) into display blocks, and return the plain text that citation " +
		"offsets are measured against. Offsets are UTF-16 code units.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"body"},
		"properties": map[string]interface{}{
			"body": map[string]interface{}{
				"type":        "string",
				"description": "Raw article body",
			},
			"extended_tokens": map[string]interface{}{
				"type": "boolean",
				"description": "Also treat # to ###### as headings and * as list items. " +
					"Stored citation offsets assume the default token set.",
			},
		},
	},
}

// InputProjectDocument is the input for the ProjectDocument tool.
type InputProjectDocument struct {
	Body           string `json:"body"`
	ExtendedTokens bool   `json:"extended_tokens,omitempty"`
}

// OutputProjectDocument is the output for the ProjectDocument tool.
type OutputProjectDocument struct {
	Blocks []citation.Block `json:"blocks"`
	// PlainText is the newline-joined block text.
	PlainText string `json:"plain_text"`
	// Length is the plain text length in UTF-16 code units.
	Length int `json:"length"`
}

// ProjectDocument projects a body into blocks and plain text.
func ProjectDocument(_ context.Context, _ *mcp.CallToolRequest, input InputProjectDocument) (*mcp.CallToolResult, OutputProjectDocument, error) {
	if input.Body == "" {
		return nil, OutputProjectDocument{}, fmt.Errorf("body is required")
	}
	blocks := citation.ProjectWith(input.Body, citation.ProjectOptions{ExtendedTokens: input.ExtendedTokens})
	plain := citation.PlainText(blocks)
	return nil, OutputProjectDocument{
		Blocks:    blocks,
		PlainText: plain,
		Length:    citation.CodeUnits(plain),
	}, nil
}
