package geometry

import (
	"draglist/internal/domain"
)

// Hit identifies the item found under a pointer position
type Hit struct {
	ID    string
	Index int
}

// HitTester resolves pointer positions against the registry
type HitTester struct {
	registry *Registry
}

// NewHitTester creates a hit tester over the given registry
func NewHitTester(registry *Registry) *HitTester {
	return &HitTester{registry: registry}
}

// Locate returns the item whose bounds contain the position, excluding
// excludeID (the item currently being dragged). Containment is inclusive
// on all four edges.
//
// Returns false when no bounds contain the position. Callers should keep
// their previous over index in that case: fast pointer motion can
// momentarily leave the gaps between items uncovered.
//
// When two records legitimately overlap the winner is whichever is visited
// first; no spatial priority rule is applied. A well-formed layout never
// has overlapping bounds, so the tie-break is deliberately unspecified.
func (h *HitTester) Locate(pos domain.Point, excludeID string) (Hit, bool) {
	for _, rec := range h.registry.Records() {
		if rec.ID == excludeID {
			continue
		}
		if rec.Bounds.Contains(pos) {
			return Hit{ID: rec.ID, Index: rec.Index}, true
		}
	}
	return Hit{}, false
}
