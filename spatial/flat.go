package spatial

import "github.com/lixenwraith/transit-overlay/core"

// FlatIndex filters a plain position list on every query
// O(n) per query; only intended for worlds with few transport structures
type FlatIndex struct {
	positions []Point
}

// NewFlatIndex copies positions into a flat index
func NewFlatIndex(positions []Point) *FlatIndex {
	return &FlatIndex{positions: append([]Point(nil), positions...)}
}

// Query appends positions whose cell overlaps r
func (f *FlatIndex) Query(r core.Rect, dst []Point) []Point {
	for _, p := range f.positions {
		if cellOverlaps(p, r) {
			dst = append(dst, p)
		}
	}
	return dst
}

// Len returns the indexed position count
func (f *FlatIndex) Len() int { return len(f.positions) }
