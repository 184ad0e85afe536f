package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/transit-overlay/core"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
	Dim  bool
}

// RenderBuffer is a cell compositor flushed to a tcell.Screen once per frame
// Untouched cells get the default background on flush
type RenderBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Fg: RgbTileGlyph, Bg: RgbBackground}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Bounds returns the buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) { return b.width, b.height }

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); out of bounds yields the zero cell
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetWithBg writes an opaque cell
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// SetBgOnly updates the background while preserving rune and foreground
func (b *RenderBuffer) SetBgOnly(x, y int, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = bg
	b.touched[idx] = true
}

// SetBlend writes a glyph whose foreground is alpha-blended over the cell's background
// Partial alpha also sets the dim attribute
func (b *RenderBuffer) SetBlend(x, y int, r rune, fg core.RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = dst.Bg.Blend(fg, alpha)
	dst.Dim = alpha < 1
}

// SetText writes s starting at (x, y), clipped to the row
func (b *RenderBuffer) SetText(x, y int, s string, fg, bg core.RGB) int {
	n := 0
	for _, r := range s {
		if x+n >= b.width {
			break
		}
		b.SetWithBg(x+n, y, r, fg, bg)
		n++
	}
	return n
}

// FillRow paints a full-width background band on row y
func (b *RenderBuffer) FillRow(y int, bg core.RGB) {
	for x := 0; x < b.width; x++ {
		b.SetWithBg(x, y, ' ', bg, bg)
	}
}

// Flush writes the buffer to the screen; the caller calls Show
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			bg := c.Bg
			if !b.touched[row+x] {
				bg = RgbBackground
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(toColor(c.Fg)).Background(toColor(bg)).Dim(c.Dim)
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
