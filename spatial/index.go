// Package spatial indexes static transport-structure tile positions for
// per-frame visibility queries.
package spatial

import "github.com/lixenwraith/transit-overlay/core"

// Point is a tile coordinate; its cell is the unit square centered on it
type Point = core.Point

// Index answers visibility queries over a fixed set of tile positions
// Implementations are immutable after construction and read-only during rendering
type Index interface {
	// Query appends every position whose cell overlaps r (tile units) to dst
	Query(r core.Rect, dst []Point) []Point
	// Len returns the number of indexed positions
	Len() int
}

// cellOverlaps reports whether the unit cell centered on p overlaps r
func cellOverlaps(p Point, r core.Rect) bool {
	px, py := float64(p.X), float64(p.Y)
	return px-0.5 < r.MaxX() && px+0.5 > r.X && py-0.5 < r.MaxY() && py+0.5 > r.Y
}
