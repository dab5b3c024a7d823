// SPDX-License-Identifier: Apache-2.0

// Package store provides the citation data store used by the HTTP and MCP
// surfaces: an in-memory store and a YAML file-backed one.
package store

import (
	"context"
	"sync"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// Memory keeps citations per review in memory.
type Memory struct {
	mu      sync.RWMutex
	reviews map[string][]citation.Citation
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{reviews: make(map[string][]citation.Citation)}
}

// Fetch returns a copy of the review's citations ordered by start offset.
func (m *Memory) Fetch(ctx context.Context, reviewID string) ([]citation.Citation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return citation.SortByOffset(m.reviews[reviewID]), nil
}

func (m *Memory) Insert(ctx context.Context, reviewID string, citations []citation.Citation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[reviewID] = append(m.reviews[reviewID], citations...)
	return nil
}

func (m *Memory) DeleteAll(ctx context.Context, reviewID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, reviewID)
	return nil
}

// snapshot copies every review for persistence.
func (m *Memory) snapshot() map[string][]citation.Citation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]citation.Citation, len(m.reviews))
	for id, cs := range m.reviews {
		out[id] = citation.SortByOffset(cs)
	}
	return out
}
