package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draglist/internal/domain"
)

func testItems() []domain.Item {
	return []domain.Item{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Bravo"},
		{ID: "c", Title: "Charlie"},
		{ID: "d", Title: "Delta"},
		{ID: "e", Title: "Echo"},
	}
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestMoveForward(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	s.Move(1, 3)
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, ids(s.Items()))
}

func TestMoveBackward(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	s.Move(3, 1)
	assert.Equal(t, []string{"a", "d", "b", "c", "e"}, ids(s.Items()))
}

func TestMoveToEnds(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	s.Move(0, 4)
	assert.Equal(t, []string{"b", "c", "d", "e", "a"}, ids(s.Items()))

	s.Move(4, 0)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(s.Items()))
}

func TestMoveNoOpCases(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	s.Move(2, 2)
	s.Move(-1, 2)
	s.Move(2, 5)
	s.Move(5, 2)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(s.Items()))
}

func TestMoveIsIdempotentOnceApplied(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	s.Move(1, 3)
	first := ids(s.Items())

	// Re-applying the logical outcome (item now at 3 stays at 3) changes
	// nothing.
	s.Move(3, 3)
	assert.Equal(t, first, ids(s.Items()))
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewMemoryItemStore(testItems())

	items := s.Items()
	items[0] = domain.Item{ID: "z", Title: "Zulu"}

	got, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestGetAddRemove(t *testing.T) {
	s := NewMemoryItemStore(nil)
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get(0)
	assert.False(t, ok)

	s.Add(domain.Item{ID: "a", Title: "Alpha"})
	s.Add(domain.Item{ID: "b", Title: "Bravo"})
	assert.Equal(t, 2, s.Len())

	s.Remove(0)
	got, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	s.Remove(7) // out of range, no-op
	assert.Equal(t, 1, s.Len())
}
