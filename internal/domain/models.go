package domain

// Point is a 2D point in viewport coordinates
type Point struct {
	X float64
	Y float64
}

// Add returns the sum of two points
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both coordinates are zero
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is an axis-aligned rectangle in viewport coordinates
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal size of the rectangle
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical size of the rectangle
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Contains reports whether the point lies inside the rectangle.
// All four edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// ItemRecord represents one orderable item tracked by the geometry registry
type ItemRecord struct {
	ID     string
	Index  int
	Bounds Rect
}

// ActivationConfig controls how a pending press becomes an active drag.
// Whichever of the delay or the distance threshold is crossed first wins.
type ActivationConfig struct {
	DelayMs    int
	DistancePx float64
}

// AutoScrollConfig controls edge-triggered scrolling during a drag
type AutoScrollConfig struct {
	Enabled            bool
	ThresholdPx        float64
	MaxSpeedPxPerFrame float64
	Acceleration       float64
}

// Item is one orderable entry shown by the host application
type Item struct {
	ID    string
	Title string
}

// ReorderInstruction is the final outcome of a completed gesture
type ReorderInstruction struct {
	From      int
	To        int
	Cancelled bool
}
