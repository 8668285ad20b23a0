package displace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"draglist/internal/domain"
)

func TestShiftDraggingTowardHigherIndices(t *testing.T) {
	// 5 items, dragging index 1 to over index 3: items 2 and 3 shift
	// backward by one extent, 0 and 4 stay put.
	const extent = 10.0
	expected := map[int]float64{0: 0, 1: 0, 2: -extent, 3: -extent, 4: 0}

	for index, want := range expected {
		got := Shift(Vertical, 1, 3, index, extent)
		assert.Equalf(t, want, got.Y, "index %d", index)
		assert.Zero(t, got.X)
	}
}

func TestShiftDraggingTowardLowerIndices(t *testing.T) {
	// Dragging index 3 to over index 1: items 1 and 2 shift forward.
	const extent = 10.0
	expected := map[int]float64{0: 0, 1: extent, 2: extent, 3: 0, 4: 0}

	for index, want := range expected {
		got := Shift(Vertical, 3, 1, index, extent)
		assert.Equalf(t, want, got.Y, "index %d", index)
	}
}

func TestShiftNoMovement(t *testing.T) {
	for index := 0; index < 5; index++ {
		assert.True(t, Shift(Vertical, 2, 2, index, 10).IsZero())
	}
}

func TestShiftHorizontalAxis(t *testing.T) {
	got := Shift(Horizontal, 0, 2, 1, 25)
	assert.Equal(t, -25.0, got.X)
	assert.Zero(t, got.Y)
}

func TestShifted(t *testing.T) {
	assert.True(t, Shifted(1, 3, 2))
	assert.True(t, Shifted(1, 3, 3))
	assert.False(t, Shifted(1, 3, 1))
	assert.False(t, Shifted(1, 3, 4))
	assert.True(t, Shifted(3, 1, 1))
	assert.True(t, Shifted(3, 1, 2))
	assert.False(t, Shifted(3, 1, 3))
	assert.False(t, Shifted(2, 2, 2))
}

func TestExtentUsesLiveBounds(t *testing.T) {
	// A dragged element spanning two rows displaces by its full size,
	// not a nominal row height.
	bounds := domain.Rect{Left: 0, Top: 10, Right: 100, Bottom: 29}
	assert.Equal(t, 23.0, Extent(Vertical, bounds, 4))
	assert.Equal(t, 104.0, Extent(Horizontal, bounds, 4))
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "Vertical", Vertical.String())
	assert.Equal(t, "Horizontal", Horizontal.String())
}
