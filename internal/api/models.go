// SPDX-License-Identifier: Apache-2.0

package api

import "github.com/reviewdesk/citeengine/internal/citation"

// CitationsResponse is returned by the citation list and replace endpoints.
type CitationsResponse struct {
	ReviewID  string              `json:"review_id"`
	Count     int                 `json:"count"`
	Citations []citation.Citation `json:"citations"`
}

type ReplaceCitationsRequest struct {
	Citations []citation.Citation `json:"citations"`
}

type EmphasizeRequest struct {
	CitationID string `json:"citation_id" binding:"required"`
}

type RenderRequest struct {
	Body string `json:"body" binding:"required"`
}

type RenderResponse struct {
	ActiveID string                    `json:"active_id,omitempty"`
	Blocks   []citation.AnnotatedBlock `json:"blocks"`
	Spans    []citation.Span           `json:"spans"`
	Skipped  []string                  `json:"skipped"`
}

// CaptureRequest carries a selection together with the caller's identity;
// capture is only enabled for reviewers.
type CaptureRequest struct {
	Body     string            `json:"body" binding:"required"`
	Anchor   int               `json:"anchor"`
	Focus    int               `json:"focus"`
	Identity citation.Identity `json:"identity"`
}
