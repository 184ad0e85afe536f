package render

import (
	"github.com/lixenwraith/transit-overlay/item"
)

// DefaultIconGlyph is drawn for items without a glyph
const DefaultIconGlyph = '•'

// Screen is the overlay draw target backed by a RenderBuffer
type Screen struct {
	buf *RenderBuffer
	cam *Camera

	layer float64
	icons int
}

// NewScreen binds a drawer to a buffer and camera
func NewScreen(buf *RenderBuffer, cam *Camera) *Screen {
	return &Screen{buf: buf, cam: cam}
}

// Begin selects the icon layer and starts a new icon count
func (s *Screen) Begin(layer float64) {
	s.layer = layer
	s.icons = 0
}

// DrawIcon writes the item glyph into the cell containing (x, y)
// Size is ignored: an icon never exceeds one cell
func (s *Screen) DrawIcon(d item.Descriptor, x, y, size, alpha float64) {
	col, row, ok := s.cam.ToCell(x, y)
	if !ok {
		return
	}
	glyph := d.Glyph
	if glyph == 0 {
		glyph = DefaultIconGlyph
	}
	s.buf.SetBlend(col, row, glyph, d.Color, alpha)
	s.icons++
}

// Reset ends the frame's icon pass
func (s *Screen) Reset() { s.layer = 0 }

// Layer returns the active layer, zero outside a frame
func (s *Screen) Layer() float64 { return s.layer }

// Icons returns the icons written into the viewport since Begin
func (s *Screen) Icons() int { return s.icons }
