package spatial

import "github.com/lixenwraith/transit-overlay/core"

const (
	// LeafCapacity is the number of positions a leaf holds before splitting
	LeafCapacity = 8
	// MaxDepth bounds subdivision; 16 levels cover worlds of 65536 tiles per side
	MaxDepth = 16
)

// node covers position centers in [x0, x1) x [y0, y1)
// Cells extend half a tile past the center, queries pad node bounds by 0.5 to compensate
type node struct {
	x0, y0, x1, y1 int
	items          []Point
	children       *[4]node // nil for leaves
	count          int      // positions in this subtree
}

// QuadTree partitions tile positions of a fixed-size world
// Built once per world load; no mutation after Build returns
type QuadTree struct {
	root    node
	width   int
	height  int
	dropped int
}

// Build constructs a quad-tree over a worldWidth x worldHeight tile grid
// Positions outside the grid are dropped and counted
func Build(worldWidth, worldHeight int, positions []Point) *QuadTree {
	qt := &QuadTree{
		root:   node{x0: 0, y0: 0, x1: max(worldWidth, 1), y1: max(worldHeight, 1)},
		width:  worldWidth,
		height: worldHeight,
	}
	for _, p := range positions {
		if !qt.insert(p) {
			qt.dropped++
		}
	}
	return qt
}

func (qt *QuadTree) insert(p Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= qt.width || p.Y >= qt.height {
		return false
	}
	qt.root.insert(p, 0)
	return true
}

func (n *node) insert(p Point, depth int) {
	n.count++
	if n.children != nil {
		n.child(p).insert(p, depth+1)
		return
	}

	n.items = append(n.items, p)
	if len(n.items) <= LeafCapacity || depth >= MaxDepth || (n.x1-n.x0 <= 1 && n.y1-n.y0 <= 1) {
		return
	}
	n.split(depth)
}

// split turns a full leaf into an inner node and redistributes its items
func (n *node) split(depth int) {
	mx := n.x0 + (n.x1-n.x0+1)/2
	my := n.y0 + (n.y1-n.y0+1)/2
	n.children = &[4]node{
		{x0: n.x0, y0: n.y0, x1: mx, y1: my},
		{x0: mx, y0: n.y0, x1: n.x1, y1: my},
		{x0: n.x0, y0: my, x1: mx, y1: n.y1},
		{x0: mx, y0: my, x1: n.x1, y1: n.y1},
	}
	items := n.items
	n.items = nil
	for _, p := range items {
		n.child(p).insert(p, depth+1)
	}
}

func (n *node) child(p Point) *node {
	c := n.children
	i := 0
	if p.X >= c[0].x1 {
		i |= 1
	}
	if p.Y >= c[0].y1 {
		i |= 2
	}
	return &c[i]
}

// Query appends every position whose cell overlaps r (tile units)
func (qt *QuadTree) Query(r core.Rect, dst []Point) []Point {
	if qt.root.count == 0 {
		return dst
	}
	return qt.root.query(r, dst)
}

func (n *node) query(r core.Rect, dst []Point) []Point {
	if n.count == 0 || !n.overlaps(r) {
		return dst
	}
	if n.children == nil {
		for _, p := range n.items {
			if cellOverlaps(p, r) {
				dst = append(dst, p)
			}
		}
		return dst
	}
	for i := range n.children {
		dst = n.children[i].query(r, dst)
	}
	return dst
}

// overlaps tests r against the node's center range padded by half a cell
func (n *node) overlaps(r core.Rect) bool {
	return float64(n.x0)-0.5 < r.MaxX() && float64(n.x1)-0.5 > r.X &&
		float64(n.y0)-0.5 < r.MaxY() && float64(n.y1)-0.5 > r.Y
}

// Len returns the number of indexed positions
func (qt *QuadTree) Len() int { return qt.root.count }

// Dropped returns the number of positions rejected as out of bounds
func (qt *QuadTree) Dropped() int { return qt.dropped }

// Depth returns the deepest level reached, root is 0
func (qt *QuadTree) Depth() int { return qt.root.depth() }

func (n *node) depth() int {
	if n.children == nil {
		return 0
	}
	d := 0
	for i := range n.children {
		d = max(d, n.children[i].depth())
	}
	return d + 1
}
