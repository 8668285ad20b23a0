// Package geometry tracks the live bounds of orderable items and resolves
// which item is under a pointer position.
package geometry

import (
	"errors"
	"sort"
	"sync"

	"draglist/internal/domain"
)

var (
	// ErrEmptyID is returned when an item is registered without an id
	ErrEmptyID = errors.New("geometry: item id must not be empty")
	// ErrNegativeIndex is returned when an item is registered with an index below zero
	ErrNegativeIndex = errors.New("geometry: item index must not be negative")
)

// Registry is an in-memory registry of item geometry.
//
// It has no invalidation signal of its own: callers must re-register on
// every geometry-affecting change (mount, resize, reorder). Reads always
// see the latest registered state; brief staleness during a burst of
// registrations is tolerated, not prevented.
type Registry struct {
	mu      sync.RWMutex
	records map[string]domain.ItemRecord
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]domain.ItemRecord),
	}
}

// Register inserts or replaces the record for id. Last write wins.
func (r *Registry) Register(id string, index int, bounds domain.Rect) error {
	if id == "" {
		return ErrEmptyID
	}
	if index < 0 {
		return ErrNegativeIndex
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[id] = domain.ItemRecord{ID: id, Index: index, Bounds: bounds}
	return nil
}

// Unregister removes the record for id. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
}

// Get returns the record for id
func (r *Registry) Get(id string) (domain.ItemRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

// IndexOf returns the registered index for id, or -1 if absent
func (r *Registry) IndexOf(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[id]; ok {
		return rec.Index
	}
	return -1
}

// Len returns the number of registered items
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns a snapshot of all registered records, ordered by index.
// The copy prevents external modification of registry state.
func (r *Registry) Records() []domain.ItemRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ItemRecord, 0, len(r.records))
	for _, rec := range r.records {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result
}
