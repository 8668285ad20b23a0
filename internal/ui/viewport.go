package ui

import (
	"draglist/internal/autoscroll"
	"draglist/internal/domain"
)

// listViewport adapts the model's visible list window to the engine's
// scroll container interface. Offsets are in rows; the fractional part of
// sub-row velocities accumulates in the model until a whole row is due.
type listViewport struct {
	m *Model
}

func (v listViewport) Bounds() domain.Rect {
	top := float64(v.m.listTop())
	return domain.Rect{
		Left:   0,
		Top:    top,
		Right:  float64(v.m.width - 1),
		Bottom: top + float64(v.m.visibleRows()-1),
	}
}

func (v listViewport) ScrollOffset() domain.Point {
	return domain.Point{Y: float64(v.m.offset)}
}

func (v listViewport) MaxScrollOffset() domain.Point {
	return domain.Point{Y: float64(v.m.maxOffset())}
}

func (v listViewport) ScrollBy(delta domain.Point) domain.Point {
	v.m.scrollRemainder += delta.Y
	step := int(v.m.scrollRemainder)
	if step == 0 {
		return domain.Point{}
	}
	v.m.scrollRemainder -= float64(step)

	old := v.m.offset
	next := old + step
	if next < 0 {
		next = 0
	}
	if max := v.m.maxOffset(); next > max {
		next = max
	}
	v.m.offset = next
	return domain.Point{Y: float64(next - old)}
}

// Resolve implements autoscroll.Resolver. The demo host owns its scroll
// container, so resolution completes immediately; the engine tolerates
// hosts that resolve later or not at all.
func (m *Model) Resolve(done func(autoscroll.Viewport, error)) {
	done(listViewport{m}, nil)
}
