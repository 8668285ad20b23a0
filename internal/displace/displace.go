// Package displace computes the visual offsets applied to non-dragged items
// so they appear to make room for the dragged item at its tentative
// destination.
package displace

import (
	"draglist/internal/domain"
)

// Axis is the axis items are ordered along
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		panic("invalid Axis")
	}
}

// Extent returns the size of the dragged item along the axis plus the
// layout's inter-item gap. This is the magnitude every displaced item
// shifts by, measured from the dragged element's live bounds since its
// rendered size may exceed a single row in non-uniform layouts.
func Extent(axis Axis, bounds domain.Rect, gap float64) float64 {
	switch axis {
	case Horizontal:
		return bounds.Width() + gap
	default:
		return bounds.Height() + gap
	}
}

// Shift returns the offset the item at index should render with, given the
// dragged item's origin index and the index currently under the pointer.
//
// Items strictly between origin and over (inclusive on the over side) slide
// one extent toward the origin to fill the gap. The result is a pure
// function of its arguments, so the same offsets can be re-derived from any
// session snapshot.
func Shift(axis Axis, originIndex, overIndex, index int, extent float64) domain.Point {
	var amount float64
	switch {
	case originIndex < overIndex && index > originIndex && index <= overIndex:
		// Dragging toward higher indices: intermediates shift backward
		amount = -extent
	case originIndex > overIndex && index >= overIndex && index < originIndex:
		// Dragging toward lower indices: intermediates shift forward
		amount = extent
	default:
		return domain.Point{}
	}

	if axis == Horizontal {
		return domain.Point{X: amount}
	}
	return domain.Point{Y: amount}
}

// Shifted reports whether the item at index renders displaced at all for
// the given origin and over indices
func Shifted(originIndex, overIndex, index int) bool {
	if originIndex < overIndex {
		return index > originIndex && index <= overIndex
	}
	if originIndex > overIndex {
		return index >= overIndex && index < originIndex
	}
	return false
}
