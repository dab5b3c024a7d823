// SPDX-License-Identifier: Apache-2.0

// Package citation maps text selections in a review target document to
// code-unit offsets and renders those offsets back as highlighted spans.
//
// Everything here works on the plain-text projection of a document body (see
// Project and PlainText). Offsets are UTF-16 code units so that values captured
// by a browser and values computed here agree.
//
// Session and Draft are client-side state holders. The HTTP and MCP surfaces
// in this module keep no selection or draft state and call Capture, Highlight
// and Replace directly. A rendering layer that owns pointer events and the
// citation form drives a Session per observed container and a Draft per open
// review.
package citation

import (
	"errors"
	"fmt"
	"sort"
)

// ContextWindow is the maximum number of code units kept on either side of a
// selection.
const ContextWindow = 50

var (
	// ErrEmptyNote is returned when a citation is added without a note.
	ErrEmptyNote = errors.New("citation note is required")
	// ErrInvalidCitation is returned when a citation violates the offset invariants.
	ErrInvalidCitation = errors.New("invalid citation")
	// ErrNotFound is returned when a citation id is unknown.
	ErrNotFound = errors.New("citation not found")
)

// Citation is a persisted annotation of a span of a document, attached to a review.
type Citation struct {
	ID            string `json:"id" yaml:"id"`
	SelectedText  string `json:"selected_text" yaml:"selected_text"`
	StartOffset   int    `json:"start_offset" yaml:"start_offset"`
	EndOffset     int    `json:"end_offset" yaml:"end_offset"`
	ContextBefore string `json:"context_before" yaml:"context_before"`
	ContextAfter  string `json:"context_after" yaml:"context_after"`
	Note          string `json:"note" yaml:"note"`
}

// Selection is a captured, not yet persisted, span of the plain text.
type Selection struct {
	Text          string `json:"text"`
	StartOffset   int    `json:"start_offset"`
	EndOffset     int    `json:"end_offset"`
	ContextBefore string `json:"context_before"`
	ContextAfter  string `json:"context_after"`
}

// checkOffsets enforces end-start == len(text) and the context bounds.
func checkOffsets(c Citation) error {
	n := CodeUnits(c.SelectedText)
	switch {
	case c.StartOffset < 0:
		return fmt.Errorf("%w %q: negative start offset %d", ErrInvalidCitation, c.ID, c.StartOffset)
	case c.EndOffset <= c.StartOffset:
		return fmt.Errorf("%w %q: end offset %d not after start offset %d", ErrInvalidCitation, c.ID, c.EndOffset, c.StartOffset)
	case c.EndOffset-c.StartOffset != n:
		return fmt.Errorf("%w %q: offset range %d..%d does not match text length %d", ErrInvalidCitation, c.ID, c.StartOffset, c.EndOffset, n)
	case CodeUnits(c.ContextBefore) > ContextWindow || CodeUnits(c.ContextAfter) > ContextWindow:
		return fmt.Errorf("%w %q: context longer than %d", ErrInvalidCitation, c.ID, ContextWindow)
	}
	return nil
}

// SortByOffset returns a copy of citations ordered by start offset, then id.
func SortByOffset(citations []Citation) []Citation {
	sorted := make([]Citation, len(citations))
	copy(sorted, citations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartOffset != sorted[j].StartOffset {
			return sorted[i].StartOffset < sorted[j].StartOffset
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
