// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// MetadataFormatReference describes the format_reference tool.
var MetadataFormatReference = &mcp.Tool{
	Name:        "format_reference",
	Description: "Format the reference text readers copy when citing an article.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"id", "title"},
		"properties": map[string]interface{}{
			"id":      map[string]interface{}{"type": "string"},
			"title":   map[string]interface{}{"type": "string"},
			"subject": map[string]interface{}{"type": "string"},
			"authors": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"published_date": map[string]interface{}{
				"type":        "string",
				"description": "Publication date, YYYY-MM-DD",
			},
		},
	},
}

// InputFormatReference is the input for the FormatReference tool.
type InputFormatReference struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subject       string   `json:"subject"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date"`
}

// OutputFormatReference is the output for the FormatReference tool.
type OutputFormatReference struct {
	Reference string `json:"reference"`
}

func (ts *Toolset) FormatReference(_ context.Context, _ *mcp.CallToolRequest, input InputFormatReference) (*mcp.CallToolResult, OutputFormatReference, error) {
	if input.ID == "" || input.Title == "" {
		return nil, OutputFormatReference{}, fmt.Errorf("id and title are required")
	}
	article := citation.Article{ID: input.ID, Title: input.Title, Subject: input.Subject}
	for _, name := range input.Authors {
		article.Authors = append(article.Authors, citation.Author{Name: name})
	}
	if input.PublishedDate != "" {
		d, err := time.Parse(time.DateOnly, input.PublishedDate)
		if err != nil {
			return nil, OutputFormatReference{}, fmt.Errorf("invalid published_date %q: %w", input.PublishedDate, err)
		}
		article.PublishedDate = &d
	}
	return nil, OutputFormatReference{Reference: citation.FormatReference(article, ts.baseURL)}, nil
}
