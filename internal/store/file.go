// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// fileDocument is the on-disk layout of a File store.
type fileDocument struct {
	Reviews map[string][]citation.Citation `yaml:"reviews"`
}

// File is a Memory store that rewrites a YAML file after every mutation.
type File struct {
	path string
	mem  *Memory

	// writeMu serialises flush plus mutation so the file matches memory.
	writeMu sync.Mutex
}

// OpenFile loads path if it exists and returns a store backed by it.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, mem: NewMemory()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read store %q: %w", path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store %q: %w", path, err)
	}
	for id, cs := range doc.Reviews {
		if err := citation.ValidateBatch(cs); err != nil {
			return nil, fmt.Errorf("store %q review %q: %w", path, id, err)
		}
		f.mem.reviews[id] = cs
	}
	return f, nil
}

func (f *File) Fetch(ctx context.Context, reviewID string) ([]citation.Citation, error) {
	return f.mem.Fetch(ctx, reviewID)
}

func (f *File) Insert(ctx context.Context, reviewID string, citations []citation.Citation) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	next := f.mem.snapshot()
	next[reviewID] = append(next[reviewID], citations...)
	if err := f.flush(next); err != nil {
		return err
	}
	return f.mem.Insert(context.WithoutCancel(ctx), reviewID, citations)
}

func (f *File) DeleteAll(ctx context.Context, reviewID string) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	next := f.mem.snapshot()
	delete(next, reviewID)
	if err := f.flush(next); err != nil {
		return err
	}
	return f.mem.DeleteAll(context.WithoutCancel(ctx), reviewID)
}

// flush writes reviews to a temp file next to path and renames it into place.
// Memory is only updated after flush succeeds, so a failed write leaves the
// store as it was.
func (f *File) flush(reviews map[string][]citation.Citation) error {
	data, err := yaml.Marshal(fileDocument{Reviews: reviews})
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store %q: %w", f.path, err)
	}
	return nil
}

// Open returns a File store for a non-empty path and a Memory store otherwise.
func Open(path string) (citation.Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
