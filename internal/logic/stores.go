package logic

import (
	"sync"

	"draglist/internal/domain"
)

// MemoryItemStore is an in-memory ordered store of items. The slice index
// is the item's logical position.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []domain.Item
}

// NewMemoryItemStore creates a new memory-based item store
func NewMemoryItemStore(items []domain.Item) *MemoryItemStore {
	s := &MemoryItemStore{}
	s.items = append(s.items, items...)
	return s
}

// Items returns a copy of the ordered items to prevent external
// modification
func (s *MemoryItemStore) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Item, len(s.items))
	copy(result, s.items)
	return result
}

// Len returns the number of items
func (s *MemoryItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item at index
func (s *MemoryItemStore) Get(index int) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		return domain.Item{}, false
	}
	return s.items[index], true
}

// Add appends an item
func (s *MemoryItemStore) Add(item domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Remove deletes the item at index. Out-of-range indices are a no-op.
func (s *MemoryItemStore) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
}

// Move applies a reorder instruction by moving the item at from to to,
// shifting the items between them. Out-of-range indices are a no-op.
func (s *MemoryItemStore) Move(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) || from == to {
		return
	}

	item := s.items[from]
	if from < to {
		copy(s.items[from:to], s.items[from+1:to+1])
	} else {
		copy(s.items[to+1:from+1], s.items[to:from])
	}
	s.items[to] = item
}
