// SPDX-License-Identifier: Apache-2.0

package citation

import "strings"

// BlockKind classifies a projected line.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockListItem  BlockKind = "list_item"
	BlockParagraph BlockKind = "paragraph"
)

const (
	defaultHeadingLevel = 2
	maxHeadingLevel     = 6
)

// Block is one displayable unit of a document body.
type Block struct {
	Kind  BlockKind `json:"kind" yaml:"kind"`
	Level int       `json:"level,omitempty" yaml:"level,omitempty"`
	Text  string    `json:"text" yaml:"text"`
}

// ProjectOptions widens the set of recognised line tokens. The zero value
// recognises exactly "## " headings and "- " list items; any other token is
// kept verbatim in a paragraph so offsets captured against stored articles
// stay valid.
type ProjectOptions struct {
	// ExtendedTokens also accepts "#" to "######" headings and "* " list items.
	ExtendedTokens bool
}

// Project splits a markup-lite body into blocks, one per non-blank line, with
// the default tokens. The result depends only on body.
func Project(body string) []Block {
	return ProjectWith(body, ProjectOptions{})
}

// ProjectWith is Project with explicit token options.
func ProjectWith(body string, opts ProjectOptions) []Block {
	lines := strings.Split(body, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if b, ok := opts.classify(line); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (o ProjectOptions) classify(line string) (Block, bool) {
	if level := o.headingLevel(line); level > 0 {
		if text := strings.TrimSpace(line[level:]); text != "" {
			return Block{Kind: BlockHeading, Level: level, Text: text}, true
		}
	}
	if len(line) > 1 && o.isListMarker(line[0]) && isSpace(line[1]) {
		if text := strings.TrimSpace(line[1:]); text != "" {
			return Block{Kind: BlockListItem, Text: text}, true
		}
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return Block{}, false
	}
	return Block{Kind: BlockParagraph, Text: text}, true
}

// headingLevel returns the number of leading '#' when they form a recognised
// heading token followed by whitespace, or 0.
func (o ProjectOptions) headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n == len(line) || !isSpace(line[n]) {
		return 0
	}
	if o.ExtendedTokens {
		if n > maxHeadingLevel {
			return 0
		}
		return n
	}
	if n != defaultHeadingLevel {
		return 0
	}
	return n
}

func (o ProjectOptions) isListMarker(b byte) bool {
	return b == '-' || (o.ExtendedTokens && b == '*')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// PlainText is the text the blocks display, joined by newlines. Capture and
// highlight offsets index into this string.
func PlainText(blocks []Block) string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n")
}
