package overlay

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/spatial"
)

// Context is the world-scoped state built at world load and dropped at unload
// Read-only during rendering
type Context struct {
	index    spatial.Index
	mode     IndexMode
	tileSize float64
	width    int
	height   int
	dropped  int
}

// NewContext indexes every transport structure of w
func NewContext(w World, cfg Config) *Context {
	positions := w.Positions()
	width, height := w.Size()

	mode := cfg.Index
	if mode == IndexAuto || mode == "" {
		mode = IndexQuadTree
		if len(positions) <= cfg.FlatThreshold {
			mode = IndexFlat
		}
	}

	ctx := &Context{
		mode:     mode,
		tileSize: w.TileSize(),
		width:    width,
		height:   height,
	}
	switch mode {
	case IndexFlat:
		ctx.index = spatial.NewFlatIndex(positions)
	default:
		qt := spatial.Build(width, height, positions)
		ctx.index = qt
		ctx.dropped = qt.Dropped()
	}
	return ctx
}

// Mode returns the resolved index mode
func (c *Context) Mode() IndexMode { return c.mode }

// Indexed returns the number of indexed structures
func (c *Context) Indexed() int { return c.index.Len() }

// Dropped returns the positions rejected as outside the world
func (c *Context) Dropped() int { return c.dropped }

// TileSize returns the world-unit tile size captured at load
func (c *Context) TileSize() float64 { return c.tileSize }

// Visible appends the positions visible in view (world units) to dst
// view is grown by one tile so icons drifting past a structure's edge stay drawn
func (c *Context) Visible(view core.Rect, dst []core.Point) []core.Point {
	return c.index.Query(view.Grow(c.tileSize).Scaled(c.tileSize), dst)
}
