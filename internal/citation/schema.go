// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// citationSchema mirrors the review_citations record shape.
const citationSchema = `
#Citation: {
	id:             string & !=""
	selected_text:  string & !=""
	start_offset:   int & >=0
	end_offset:     int & >start_offset
	context_before: string
	context_after:  string
	note:           string
}
`

// Validator checks citations against the record schema and the offset invariants.
type Validator struct {
	mu  sync.Mutex
	def cue.Value
}

// NewValidator compiles the citation schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(citationSchema)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile citation schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Citation"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Citation: %w", err)
	}
	return &Validator{def: def}, nil
}

var defaultValidator = sync.OnceValues(NewValidator)

// Validate checks a single citation.
func (v *Validator) Validate(c Citation) error {
	// cue.Context is not safe for concurrent use.
	v.mu.Lock()
	unified := v.def.Unify(v.def.Context().Encode(c))
	err := unified.Validate(cue.Concrete(true))
	v.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidCitation, c.ID, err)
	}
	return checkOffsets(c)
}

// ValidateBatch checks every citation and rejects duplicate ids.
func (v *Validator) ValidateBatch(citations []Citation) error {
	seen := make(map[string]struct{}, len(citations))
	for _, c := range citations {
		if err := v.Validate(c); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w %q: duplicate id", ErrInvalidCitation, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// ValidateBatch checks citations with the shared schema.
func ValidateBatch(citations []Citation) error {
	v, err := defaultValidator()
	if err != nil {
		return err
	}
	return v.ValidateBatch(citations)
}
