package render

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/sim"
	"github.com/lixenwraith/transit-overlay/vmath"
)

var dirArrows = [4]rune{'→', '↑', '←', '↓'}

// DrawWorld paints the static tile layer: links first, then building footprints
func DrawWorld(buf *RenderBuffer, cam *Camera, w *sim.World) {
	t := w.TileSize()
	buildings := w.Buildings()

	for _, b := range buildings {
		if b.Block != sim.BlockBufferedBridge {
			continue
		}
		s, ok := w.StructureAt(b.Pos)
		if !ok || !s.Bridge.LinkValid {
			continue
		}
		drawLink(buf, cam, s.Center, s.Bridge.LinkPos)
	}

	for _, b := range buildings {
		col, row := cam.TileCells(b.Pos, t)
		bg := blockBg(b.Block)
		for dy := 0; dy < TileRows; dy++ {
			for dx := 0; dx < TileCols; dx++ {
				buf.SetWithBg(col+dx, row+dy, ' ', RgbTileGlyph, bg)
			}
		}
		buf.SetWithBg(col, row, blockGlyph(b), RgbTileGlyph, bg)
	}
}

// drawLink rules a straight line between two tile centers
func drawLink(buf *RenderBuffer, cam *Camera, from, to core.Vec) {
	glyph, dist, cell := '─', to.X-from.X, cam.CellW
	step := core.Vec{X: 1}
	if from.X == to.X {
		glyph, dist, cell = '│', to.Y-from.Y, cam.CellH
		step = core.Vec{Y: 1}
	}
	if dist < 0 {
		dist, step = -dist, step.Scale(-1)
	}
	step = step.Scale(cell)

	p := from
	for i := 0; i <= int(dist/cell); i++ {
		if col, row, ok := cam.ToCell(p.X, p.Y); ok {
			buf.SetWithBg(col, row, glyph, RgbLinkLine, RgbBackground)
		}
		p = p.Add(step)
	}
}

func blockBg(b sim.Block) core.RGB {
	switch b {
	case sim.BlockSource:
		return RgbSourceBg
	case sim.BlockSink:
		return RgbSinkBg
	case sim.BlockBufferedBridge:
		return RgbBridgeBg
	case sim.BlockSimpleBridge:
		return RgbSimpleBg
	case sim.BlockJunction:
		return RgbJunctBg
	case sim.BlockPassthrough:
		return RgbPassBg
	}
	return RgbGrid
}

func blockGlyph(b *sim.Building) rune {
	switch b.Block {
	case sim.BlockSource, sim.BlockPassthrough:
		return dirArrows[vmath.FloorMod(b.Rotation, 4)]
	case sim.BlockSink:
		return '◘'
	case sim.BlockBufferedBridge:
		if b.HasLink {
			return '≡'
		}
		return dirArrows[vmath.FloorMod(b.Rotation, 4)]
	case sim.BlockSimpleBridge:
		return '='
	case sim.BlockJunction:
		return '┼'
	}
	return '?'
}
