// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"strings"
	"unicode"
)

// Capture turns a selection between anchor and focus (code-unit offsets into
// plain, in either order) into a Selection. It reports false when the range
// falls outside plain or holds only whitespace. Surrounding whitespace is
// trimmed and the offsets follow the trimmed text, so the selected text is
// always plain[start:end]. A bound inside a surrogate pair widens to cover the
// whole character.
func Capture(plain string, anchor, focus int) (Selection, bool) {
	return capture(toUnits(plain), anchor, focus)
}

func capture(text units, anchor, focus int) (Selection, bool) {
	start, end := anchor, focus
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > len(text) || start == end {
		return Selection{}, false
	}
	start, end = text.widen(start, end)

	raw := text[start:end].String()
	left := strings.TrimLeftFunc(raw, unicode.IsSpace)
	selected := strings.TrimRightFunc(left, unicode.IsSpace)
	if selected == "" {
		return Selection{}, false
	}

	start += CodeUnits(raw) - CodeUnits(left)
	end = start + CodeUnits(selected)
	return Selection{
		Text:          selected,
		StartOffset:   start,
		EndOffset:     end,
		ContextBefore: text.clip(start-ContextWindow, start).String(),
		ContextAfter:  text.clip(end, end+ContextWindow).String(),
	}, true
}

// Target says where a pointer-down landed relative to the capture session.
type Target int

const (
	// TargetOutside is anywhere that is neither the container nor the popup.
	TargetOutside Target = iota
	// TargetContainer is the observed document container.
	TargetContainer
	// TargetPopup is an element carrying the citation-entry popup marker.
	TargetPopup
)

// Session tracks the current selection of one observed container between
// pointer events. It is driven from a single event loop and is not safe for
// concurrent use.
type Session struct {
	text     units
	enabled  bool
	onSelect func(Selection)

	current    *Selection
	generation uint64
	closed     bool
}

// NewSession starts a capture session over the plain text of a document.
// A disabled session ignores every event. onSelect may be nil.
func NewSession(plain string, enabled bool, onSelect func(Selection)) *Session {
	return &Session{
		text:     toUnits(plain),
		enabled:  enabled,
		onSelect: onSelect,
	}
}

// Release handles pointer-up and touch-end inside the container.
func (s *Session) Release(anchor, focus int) (Selection, bool) {
	if !s.listening() {
		return Selection{}, false
	}
	sel, ok := capture(s.text, anchor, focus)
	if !ok {
		s.current = nil
		return Selection{}, false
	}
	s.current = &sel
	if s.onSelect != nil {
		s.onSelect(sel)
	}
	return sel, true
}

// Press handles a document-wide pointer-down. Presses inside the container or
// the popup keep the selection; anything else clears it.
func (s *Session) Press(target Target) {
	if !s.listening() {
		return
	}
	if target == TargetOutside {
		s.Clear()
	}
}

// Clear drops the stored selection and advances Generation so the renderer
// removes the native highlight.
func (s *Session) Clear() {
	s.current = nil
	s.generation++
}

// Current returns the stored selection, if any.
func (s *Session) Current() (Selection, bool) {
	if s.current == nil {
		return Selection{}, false
	}
	return *s.current, true
}

// Generation counts how many times the selection has been cleared.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Close deregisters the session. Later events are ignored.
func (s *Session) Close() {
	s.closed = true
	s.current = nil
}

func (s *Session) listening() bool {
	return s.enabled && !s.closed
}
