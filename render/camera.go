package render

import (
	"math"

	"github.com/lixenwraith/transit-overlay/core"
)

// Tile footprint in terminal cells; two columns per row keeps tiles square
const (
	TileCols = 4
	TileRows = 2
)

// Camera maps world units to terminal cells
// World +Y is up, screen rows grow downward
type Camera struct {
	CX, CY     float64 // world point at the viewport center
	Cols, Rows int
	CellW      float64 // world units per column
	CellH      float64 // world units per row
}

// NewCamera creates a camera for tileSize world units per tile, centered on the world
func NewCamera(tileSize float64, worldW, worldH, cols, rows int) *Camera {
	c := &Camera{
		CellW: tileSize / TileCols,
		CellH: tileSize / TileRows,
	}
	c.Resize(cols, rows)
	// Tile centers sit on integer multiples of tileSize
	c.CX = (float64(worldW) - 1) * tileSize / 2
	c.CY = (float64(worldH) - 1) * tileSize / 2
	return c
}

// Resize sets the viewport in cells
func (c *Camera) Resize(cols, rows int) {
	c.Cols, c.Rows = max(cols, 0), max(rows, 0)
}

// Pan moves the view by dx, dy cells; positive dy moves the view down the screen
func (c *Camera) Pan(dx, dy int) {
	c.CX += float64(dx) * c.CellW
	c.CY -= float64(dy) * c.CellH
}

// VisibleWorldRect returns the world region covered by the viewport
func (c *Camera) VisibleWorldRect() core.Rect {
	return core.RectCentered(c.CX, c.CY, float64(c.Cols)*c.CellW, float64(c.Rows)*c.CellH)
}

// ToCell maps a world point to the cell containing it
// ok is false when the point falls outside the viewport
func (c *Camera) ToCell(x, y float64) (col, row int, ok bool) {
	v := c.VisibleWorldRect()
	col = int(math.Floor((x - v.X) / c.CellW))
	row = int(math.Floor((v.MaxY() - y) / c.CellH))
	ok = col >= 0 && col < c.Cols && row >= 0 && row < c.Rows
	return col, row, ok
}

// TileCells returns the top-left cell of the tile at p
func (c *Camera) TileCells(p core.Point, tileSize float64) (col, row int) {
	w := p.World(tileSize)
	col, row, _ = c.ToCell(w.X-tileSize/2+c.CellW/2, w.Y+tileSize/2-c.CellH/2)
	return col, row
}
