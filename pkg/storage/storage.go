// Package storage persists layout documents so the HTTP server can hand out
// stable layout IDs.
//
// [MongoStore] keeps one document per layout, keyed by the layout's UUID.
// [MemoryStore] serves tests and single-process deployments.
package storage

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/graph"
)

// Store saves and loads layout documents by ID.
type Store interface {
	// SaveLayout inserts or replaces l under l.ID.
	SaveLayout(ctx context.Context, l graph.Layout) error

	// GetLayout returns the layout with the given ID, or a NOT_FOUND error.
	GetLayout(ctx context.Context, id string) (graph.Layout, error)

	// DeleteLayout removes a layout. Deleting a missing ID is not an error.
	DeleteLayout(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

// MemoryStore is a map-backed Store, safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]graph.Layout
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]graph.Layout)}
}

// SaveLayout stores l.
func (s *MemoryStore) SaveLayout(_ context.Context, l graph.Layout) error {
	if err := errors.ValidateLayoutID(l.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = l
	return nil
}

// GetLayout loads a layout.
func (s *MemoryStore) GetLayout(_ context.Context, id string) (graph.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return graph.Layout{}, errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	return l, nil
}

// DeleteLayout removes a layout.
func (s *MemoryStore) DeleteLayout(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.layouts, id)
	return nil
}

// IDs returns the stored layout IDs, sorted.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.layouts))
}

// Close does nothing.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
