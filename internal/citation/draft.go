// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store is the data store holding citations per review.
type Store interface {
	// Fetch returns a review's citations ordered by start offset.
	Fetch(ctx context.Context, reviewID string) ([]Citation, error)
	Insert(ctx context.Context, reviewID string, citations []Citation) error
	DeleteAll(ctx context.Context, reviewID string) error
}

// Replace deletes a review's citations and inserts the given batch.
func Replace(ctx context.Context, store Store, reviewID string, citations []Citation) error {
	if err := ValidateBatch(citations); err != nil {
		return err
	}
	if err := store.DeleteAll(ctx, reviewID); err != nil {
		return fmt.Errorf("delete citations for review %q: %w", reviewID, err)
	}
	if len(citations) == 0 {
		return nil
	}
	if err := store.Insert(ctx, reviewID, citations); err != nil {
		return fmt.Errorf("insert citations for review %q: %w", reviewID, err)
	}
	return nil
}

// Draft queues a reviewer's citations client-side until the review is
// submitted. A failed Load or Submit leaves the queue as it was.
type Draft struct {
	reviewID string
	newID    func() string

	mu    sync.Mutex
	items []Citation
}

// NewDraft starts an empty draft for reviewID.
func NewDraft(reviewID string) *Draft {
	return &Draft{
		reviewID: reviewID,
		newID:    uuid.NewString,
	}
}

// ReviewID returns the review the draft belongs to.
func (d *Draft) ReviewID() string {
	return d.reviewID
}

// Load replaces the queue with the citations already stored for the review.
func (d *Draft) Load(ctx context.Context, store Store) error {
	fetched, err := store.Fetch(ctx, d.reviewID)
	if err != nil {
		return fmt.Errorf("fetch citations for review %q: %w", d.reviewID, err)
	}
	d.mu.Lock()
	d.items = SortByOffset(fetched)
	d.mu.Unlock()
	return nil
}

// Add turns a selection into a citation with a fresh id.
func (d *Draft) Add(sel Selection, note string) (Citation, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return Citation{}, ErrEmptyNote
	}
	c := Citation{
		ID:            d.newID(),
		SelectedText:  sel.Text,
		StartOffset:   sel.StartOffset,
		EndOffset:     sel.EndOffset,
		ContextBefore: sel.ContextBefore,
		ContextAfter:  sel.ContextAfter,
		Note:          note,
	}
	if err := checkOffsets(c); err != nil {
		return Citation{}, err
	}
	d.mu.Lock()
	d.items = append(d.items, c)
	d.mu.Unlock()
	return c, nil
}

// Remove drops the citation with the given id.
func (d *Draft) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range d.items {
		if c.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Citations returns the queued citations ordered by start offset.
func (d *Draft) Citations() []Citation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return SortByOffset(d.items)
}

// Submit persists the queue as the review's citation set.
func (d *Draft) Submit(ctx context.Context, store Store) error {
	return Replace(ctx, store, d.reviewID, d.Citations())
}
