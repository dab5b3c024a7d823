// SPDX-License-Identifier: Apache-2.0

package citation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewdesk/citeengine/internal/citation"
)

const sampleBody = `## Introduction
The quick brown fox jumps over the lazy dog.

- first finding
- second finding
Closing remarks about the quick brown fox.`

// ---------------------------------------------------------------------------
// Projection
// ---------------------------------------------------------------------------

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []citation.Block
	}{
		{
			name: "headings list items and paragraphs",
			body: sampleBody,
			want: []citation.Block{
				{Kind: citation.BlockHeading, Level: 2, Text: "Introduction"},
				{Kind: citation.BlockParagraph, Text: "The quick brown fox jumps over the lazy dog."},
				{Kind: citation.BlockListItem, Text: "first finding"},
				{Kind: citation.BlockListItem, Text: "second finding"},
				{Kind: citation.BlockParagraph, Text: "Closing remarks about the quick brown fox."},
			},
		},
		{
			name: "blank lines produce no block",
			body: "\n\n   \nonly line\n\n",
			want: []citation.Block{{Kind: citation.BlockParagraph, Text: "only line"}},
		},
		{
			name: "heading token needs whitespace and text",
			body: "##hashtag\n## \n##\tTabbed",
			want: []citation.Block{
				{Kind: citation.BlockParagraph, Text: "##hashtag"},
				{Kind: citation.BlockParagraph, Text: "##"},
				{Kind: citation.BlockHeading, Level: 2, Text: "Tabbed"},
			},
		},
		{
			name: "only double hash headings and dash items",
			body: "# Title\n### Sub\n* star item\nThe quick brown fox",
			want: []citation.Block{
				{Kind: citation.BlockParagraph, Text: "# Title"},
				{Kind: citation.BlockParagraph, Text: "### Sub"},
				{Kind: citation.BlockParagraph, Text: "* star item"},
				{Kind: citation.BlockParagraph, Text: "The quick brown fox"},
			},
		},
		{
			name: "indented tokens are paragraphs",
			body: "  ## not a heading\n  - not an item\n- dashed item\r\n-dash",
			want: []citation.Block{
				{Kind: citation.BlockParagraph, Text: "## not a heading"},
				{Kind: citation.BlockParagraph, Text: "- not an item"},
				{Kind: citation.BlockListItem, Text: "dashed item"},
				{Kind: citation.BlockParagraph, Text: "-dash"},
			},
		},
		{
			name: "empty body",
			body: "",
			want: []citation.Block{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, citation.Project(tt.body))
		})
	}
}

func TestProjectWith_ExtendedTokens(t *testing.T) {
	body := "# Title\n###### Deep\n####### Too deep\n* star item\n- dash item"
	want := []citation.Block{
		{Kind: citation.BlockHeading, Level: 1, Text: "Title"},
		{Kind: citation.BlockHeading, Level: 6, Text: "Deep"},
		{Kind: citation.BlockParagraph, Text: "####### Too deep"},
		{Kind: citation.BlockListItem, Text: "star item"},
		{Kind: citation.BlockListItem, Text: "dash item"},
	}
	assert.Equal(t, want, citation.ProjectWith(body, citation.ProjectOptions{ExtendedTokens: true}))
	assert.Equal(t, citation.Project(body), citation.ProjectWith(body, citation.ProjectOptions{}))
}

func TestProject_ForeignTokensKeepOffsets(t *testing.T) {
	blocks := citation.Project("# Title\n### Sub\n* star item\nThe quick brown fox")
	plain := citation.PlainText(blocks)
	require.Equal(t, "# Title\n### Sub\n* star item\nThe quick brown fox", plain)

	cite := citation.Citation{ID: "c1", SelectedText: "quick", StartOffset: 32, EndOffset: 37}
	r := citation.Highlight(blocks, []citation.Citation{cite}, "")
	assert.Empty(t, r.Skipped)
	require.Len(t, r.Spans, 1)
	assert.Equal(t, 32, r.Spans[0].Start)
	assert.Equal(t, 37, r.Spans[0].End)
}

func TestProject_Deterministic(t *testing.T) {
	first := citation.Project(sampleBody)
	second := citation.Project(sampleBody)
	assert.Equal(t, first, second)
	assert.Equal(t, citation.PlainText(first), citation.PlainText(second))
}

func TestPlainText(t *testing.T) {
	blocks := citation.Project(sampleBody)
	plain := citation.PlainText(blocks)
	assert.True(t, strings.HasPrefix(plain, "Introduction\nThe quick brown fox"))
	assert.Equal(t, 4, strings.Count(plain, "\n"))
}

// ---------------------------------------------------------------------------
// Capture
// ---------------------------------------------------------------------------

func TestCapture(t *testing.T) {
	const text = "The quick brown fox"

	sel, ok := citation.Capture(text, 4, 15)
	require.True(t, ok)
	assert.Equal(t, "quick brown", sel.Text)
	assert.Equal(t, 4, sel.StartOffset)
	assert.Equal(t, 15, sel.EndOffset)
	assert.Equal(t, "The ", sel.ContextBefore)
	assert.Equal(t, " fox", sel.ContextAfter)
}

func TestCapture_EverySubstring(t *testing.T) {
	const text = "abcabc abc"
	for p := 0; p < len(text); p++ {
		for q := p + 1; q <= len(text); q++ {
			sub := text[p:q]
			if strings.TrimSpace(sub) != sub {
				continue
			}
			sel, ok := citation.Capture(text, p, q)
			require.True(t, ok, "substring %q at %d", sub, p)
			assert.Equal(t, p, sel.StartOffset, "substring %q", sub)
			assert.Equal(t, q, sel.EndOffset, "substring %q", sub)
			assert.Equal(t, sub, sel.Text)
		}
	}
}

func TestCapture_Rejects(t *testing.T) {
	const text = "The quick brown fox"
	tests := []struct {
		name          string
		anchor, focus int
	}{
		{name: "collapsed", anchor: 3, focus: 3},
		{name: "whitespace only", anchor: 3, focus: 4},
		{name: "before container", anchor: -1, focus: 4},
		{name: "past container", anchor: 10, focus: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := citation.Capture(text, tt.anchor, tt.focus)
			assert.False(t, ok)
		})
	}
}

func TestCapture_BackwardsAndTrimmed(t *testing.T) {
	const text = "The quick brown fox"

	sel, ok := citation.Capture(text, 16, 3)
	require.True(t, ok)
	assert.Equal(t, "quick brown", sel.Text)
	assert.Equal(t, 4, sel.StartOffset)
	assert.Equal(t, 15, sel.EndOffset)
}

func TestCapture_ContextWindow(t *testing.T) {
	text := strings.Repeat("a", 80) + "TARGET" + strings.Repeat("b", 80)

	sel, ok := citation.Capture(text, 80, 86)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("a", citation.ContextWindow), sel.ContextBefore)
	assert.Equal(t, strings.Repeat("b", citation.ContextWindow), sel.ContextAfter)

	sel, ok = citation.Capture("ab TARGET c", 3, 9)
	require.True(t, ok)
	assert.Equal(t, "ab ", sel.ContextBefore)
	assert.Equal(t, " c", sel.ContextAfter)
}

func TestCapture_CodeUnitOffsets(t *testing.T) {
	// U+1F600 is two UTF-16 code units, é is one.
	text := "😀 café latte"
	sel, ok := citation.Capture(text, 3, 7)
	require.True(t, ok)
	assert.Equal(t, "café", sel.Text)
	assert.Equal(t, 3, sel.StartOffset)
	assert.Equal(t, 7, sel.EndOffset)
	assert.Equal(t, "😀 ", sel.ContextBefore)
	assert.Equal(t, 2, citation.CodeUnits("😀"))
}

func TestCapture_SurrogatePairs(t *testing.T) {
	pad := strings.Repeat("x", 49)
	tests := []struct {
		name          string
		text          string
		anchor, focus int
		wantText      string
		wantStart     int
		wantEnd       int
		wantBefore    string
		wantAfter     string
	}{
		{
			name: "end inside pair widens forward",
			text: "a\U0001F600b", anchor: 0, focus: 2,
			wantText: "a😀", wantStart: 0, wantEnd: 3, wantAfter: "b",
		},
		{
			name: "start inside pair widens backward",
			text: "a\U0001F600b", anchor: 2, focus: 4,
			wantText: "😀b", wantStart: 1, wantEnd: 4, wantBefore: "a",
		},
		{
			name: "context before drops half a pair",
			text: "😀" + pad + "target", anchor: 51, focus: 57,
			wantText: "target", wantStart: 51, wantEnd: 57, wantBefore: pad,
		},
		{
			name: "context after drops half a pair",
			text: "target" + pad + "😀", anchor: 0, focus: 6,
			wantText: "target", wantStart: 0, wantEnd: 6, wantAfter: pad,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := citation.Capture(tt.text, tt.anchor, tt.focus)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, sel.Text)
			assert.Equal(t, tt.wantStart, sel.StartOffset)
			assert.Equal(t, tt.wantEnd, sel.EndOffset)
			assert.Equal(t, tt.wantBefore, sel.ContextBefore)
			assert.Equal(t, tt.wantAfter, sel.ContextAfter)
			for _, s := range []string{sel.Text, sel.ContextBefore, sel.ContextAfter} {
				assert.NotContains(t, s, "\uFFFD")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func TestSession_Lifecycle(t *testing.T) {
	var got []citation.Selection
	s := citation.NewSession("The quick brown fox", true, func(sel citation.Selection) {
		got = append(got, sel)
	})

	sel, ok := s.Release(4, 9)
	require.True(t, ok)
	assert.Equal(t, "quick", sel.Text)
	require.Len(t, got, 1)

	// Presses inside the container or the popup keep the selection.
	s.Press(citation.TargetContainer)
	s.Press(citation.TargetPopup)
	_, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), s.Generation())

	s.Press(citation.TargetOutside)
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, uint64(1), s.Generation())

	_, ok = s.Release(3, 4)
	assert.False(t, ok, "whitespace selection is not recorded")
	assert.Len(t, got, 1)
}

func TestSession_Disabled(t *testing.T) {
	called := false
	s := citation.NewSession("The quick brown fox", false, func(citation.Selection) { called = true })
	_, ok := s.Release(4, 9)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestSession_Close(t *testing.T) {
	s := citation.NewSession("The quick brown fox", true, nil)
	_, ok := s.Release(4, 9)
	require.True(t, ok)

	s.Close()
	_, ok = s.Current()
	assert.False(t, ok)
	_, ok = s.Release(4, 9)
	assert.False(t, ok)
}

func TestSession_ClearAfterCitation(t *testing.T) {
	s := citation.NewSession("The quick brown fox", true, nil)
	sel, ok := s.Release(4, 15)
	require.True(t, ok)

	d := citation.NewDraft("review-1")
	_, err := d.Add(sel, "nice phrase")
	require.NoError(t, err)
	s.Clear()

	_, ok = s.Current()
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func joinSegments(b citation.AnnotatedBlock) string {
	var sb strings.Builder
	for _, s := range b.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
