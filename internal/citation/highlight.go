// SPDX-License-Identifier: Apache-2.0

package citation

// Segment is a run of block text, optionally belonging to a citation span.
type Segment struct {
	Text       string `json:"text" yaml:"text"`
	CitationID string `json:"citation_id,omitempty" yaml:"citation_id,omitempty"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
	Active     bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// AnnotatedBlock is a Block split into segments. Concatenating the segment
// texts gives back Text.
type AnnotatedBlock struct {
	Kind     BlockKind `json:"kind" yaml:"kind"`
	Level    int       `json:"level,omitempty" yaml:"level,omitempty"`
	Text     string    `json:"text" yaml:"text"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Block drops the segments.
func (b AnnotatedBlock) Block() Block {
	return Block{Kind: b.Kind, Level: b.Level, Text: b.Text}
}

// Span is a placed citation in plain-text code units.
type Span struct {
	CitationID string `json:"citation_id" yaml:"citation_id"`
	Start      int    `json:"start" yaml:"start"`
	End        int    `json:"end" yaml:"end"`
}

// Rendering is the result of Highlight.
type Rendering struct {
	Blocks []AnnotatedBlock
	// Spans lists placed citations in ascending order.
	Spans []Span
	// Skipped holds ids of citations whose text could not be located.
	Skipped []string

	byID map[string]Citation
}

// Resolve maps a clicked span's citation id back to its citation.
func (r Rendering) Resolve(citationID string) (Citation, bool) {
	if citationID == "" {
		return Citation{}, false
	}
	c, ok := r.byID[citationID]
	return c, ok
}

// Click resolves citationID and calls fn with the match. Clicks on text that is
// not part of a span (empty or unknown id) are ignored.
func (r Rendering) Click(citationID string, fn func(Citation)) bool {
	c, ok := r.Resolve(citationID)
	if ok && fn != nil {
		fn(c)
	}
	return ok
}

// Highlight marks every locatable citation in blocks. Citations are placed in
// ascending start offset order: each one is searched for literally in the plain
// text, starting at its own start offset and never before the end of the
// previously placed span. Citations that cannot be found are skipped. The span
// of the citation whose id equals activeID is flagged Active.
func Highlight(blocks []Block, citations []Citation, activeID string) Rendering {
	r := Rendering{byID: make(map[string]Citation, len(citations))}
	for _, c := range citations {
		r.byID[c.ID] = c
	}

	text := toUnits(PlainText(blocks))
	cursor := 0
	for _, c := range SortByOffset(citations) {
		from := max(c.StartOffset, cursor)
		idx := text.indexFrom(toUnits(c.SelectedText), from)
		if idx < 0 {
			r.Skipped = append(r.Skipped, c.ID)
			continue
		}
		end := idx + CodeUnits(c.SelectedText)
		r.Spans = append(r.Spans, Span{CitationID: c.ID, Start: idx, End: end})
		cursor = end
	}

	r.Blocks = annotate(blocks, text, r.Spans, r.byID, activeID)
	return r
}

// annotate cuts each block at the span boundaries that fall inside it. Spans
// must be ordered and disjoint.
func annotate(blocks []Block, text units, spans []Span, byID map[string]Citation, activeID string) []AnnotatedBlock {
	out := make([]AnnotatedBlock, len(blocks))
	blockStart := 0
	next := 0
	for i, b := range blocks {
		blockEnd := blockStart + CodeUnits(b.Text)
		ab := AnnotatedBlock{Kind: b.Kind, Level: b.Level, Text: b.Text}

		pos := blockStart
		for next < len(spans) && spans[next].End <= blockStart {
			next++
		}
		for j := next; j < len(spans) && spans[j].Start < blockEnd; j++ {
			sp := spans[j]
			from, to := max(sp.Start, blockStart), min(sp.End, blockEnd)
			if from > pos {
				ab.Segments = append(ab.Segments, Segment{Text: text[pos:from].String()})
			}
			c := byID[sp.CitationID]
			ab.Segments = append(ab.Segments, Segment{
				Text:       text[from:to].String(),
				CitationID: c.ID,
				Note:       c.Note,
				Active:     activeID != "" && c.ID == activeID,
			})
			pos = to
		}
		if pos < blockEnd || len(ab.Segments) == 0 {
			ab.Segments = append(ab.Segments, Segment{Text: text[pos:blockEnd].String()})
		}

		out[i] = ab
		blockStart = blockEnd + 1
	}
	return out
}
