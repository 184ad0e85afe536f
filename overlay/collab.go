package overlay

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/item"
	"github.com/lixenwraith/transit-overlay/structure"
)

// World is the host's read-only view of its tile world
type World interface {
	// Positions lists the tiles of every transport structure
	Positions() []core.Point
	// StructureAt returns the structure currently at p; false once it was removed
	StructureAt(p core.Point) (structure.Structure, bool)
	// TileSize is the world-unit edge length of one tile
	TileSize() float64
	// Size returns the world dimensions in tiles
	Size() (width, height int)
	// Editor reports editor/preview mode
	Editor() bool
}

// Clock is the host's monotonic animation time in simulation ticks
type Clock interface {
	Now() float64
}

// Camera reports the visible region in world units
type Camera interface {
	VisibleWorldRect() core.Rect
}

// Catalog resolves decoded item ids
type Catalog interface {
	Len() int
	ItemByIndex(i int) item.Descriptor
}

// Drawer receives the overlay's draw calls
type Drawer interface {
	// Begin selects the draw layer for the frame's icons
	Begin(layer float64)
	// DrawIcon draws an item icon centered at (x, y) world units
	DrawIcon(d item.Descriptor, x, y, size, alpha float64)
	// Reset restores default draw state at the end of the frame
	Reset()
}
