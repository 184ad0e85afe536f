package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/item"
	"github.com/lixenwraith/transit-overlay/sim"
	"github.com/lixenwraith/transit-overlay/status"
)

// 10x10 world of 8-unit tiles in a 40x20 viewport: cells are 2x4 units
func testCamera() *Camera {
	return NewCamera(8, 10, 10, 40, 20)
}

func TestCameraMapping(t *testing.T) {
	cam := testCamera()
	if cam.CellW != 2 || cam.CellH != 4 {
		t.Fatalf("cell = %vx%v, want 2x4", cam.CellW, cam.CellH)
	}
	v := cam.VisibleWorldRect()
	if v.X != -4 || v.Y != -4 || v.Width != 80 || v.Height != 80 {
		t.Errorf("visible = %+v", v)
	}

	tests := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{0, 0, 2, 19, true},
		{-4, 75.9, 0, 0, true},
		{75.9, -3.9, 39, 19, true},
		{-4.1, 0, -1, 19, false},
		{0, 76.1, 2, -1, false},
	}
	for _, tt := range tests {
		col, row, ok := cam.ToCell(tt.x, tt.y)
		if col != tt.col || row != tt.row || ok != tt.ok {
			t.Errorf("ToCell(%v, %v) = %d,%d,%v want %d,%d,%v", tt.x, tt.y, col, row, ok, tt.col, tt.row, tt.ok)
		}
	}

	col, row := cam.TileCells(core.Point{X: 0, Y: 0}, 8)
	if col != 0 || row != 18 {
		t.Errorf("TileCells(0,0) = %d,%d want 0,18", col, row)
	}

	cam.Pan(1, 1)
	if cam.CX != 38 || cam.CY != 32 {
		t.Errorf("after pan center = %v,%v", cam.CX, cam.CY)
	}
}

func TestScreenDrawIcon(t *testing.T) {
	buf := NewRenderBuffer(40, 20)
	cam := testCamera()
	s := NewScreen(buf, cam)
	red := core.RGB{R: 255}

	s.Begin(71)
	if s.Layer() != 71 {
		t.Errorf("layer = %v", s.Layer())
	}
	s.DrawIcon(item.Descriptor{ID: 0, Glyph: 'c', Color: red}, 0, 0, 4, 1)
	s.DrawIcon(item.Descriptor{ID: 1, Color: red}, 8, 0, 4, 0.5)
	s.DrawIcon(item.Descriptor{ID: 2, Glyph: 'x', Color: red}, 500, 500, 4, 1)

	if s.Icons() != 2 {
		t.Errorf("icons = %d, want 2", s.Icons())
	}
	if c := buf.Get(2, 19); c.Rune != 'c' || c.Fg != red || c.Dim {
		t.Errorf("opaque icon cell = %+v", c)
	}
	half := buf.Get(6, 19)
	if half.Rune != DefaultIconGlyph || !half.Dim {
		t.Errorf("translucent icon cell = %+v", half)
	}
	if want := RgbBackground.Blend(red, 0.5); half.Fg != want {
		t.Errorf("blended fg = %v, want %v", half.Fg, want)
	}

	s.Reset()
	if s.Layer() != 0 {
		t.Errorf("layer after reset = %v", s.Layer())
	}
}

func TestFlushToSimulationScreen(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatal(err)
	}
	defer scr.Fini()
	scr.SetSize(8, 2)

	buf := NewRenderBuffer(8, 2)
	buf.SetWithBg(1, 0, 'a', core.RGBWhite, RgbSinkBg)
	buf.SetBlend(2, 0, 'b', core.RGBWhite, 0.8)
	buf.Flush(scr)
	scr.Show()

	r, _, style, _ := scr.GetContent(1, 0)
	fg, bg, _ := style.Decompose()
	if r != 'a' || fg != toColor(core.RGBWhite) || bg != toColor(RgbSinkBg) {
		t.Errorf("cell (1,0) = %q fg=%v bg=%v", r, fg, bg)
	}
	r, _, style, _ = scr.GetContent(2, 0)
	_, bg, attr := style.Decompose()
	if r != 'b' || attr&tcell.AttrDim == 0 || bg != toColor(RgbBackground) {
		t.Errorf("cell (2,0) = %q attr=%v bg=%v", r, attr, bg)
	}
	if r, _, _, _ := scr.GetContent(5, 1); r != ' ' {
		t.Errorf("empty cell = %q", r)
	}
}

func TestBufferResizeAndText(t *testing.T) {
	buf := NewRenderBuffer(4, 1)
	if n := buf.SetText(1, 0, "hello", core.RGBWhite, core.RGBBlack); n != 3 {
		t.Errorf("SetText wrote %d, want 3", n)
	}
	buf.Resize(6, 2)
	if w, h := buf.Bounds(); w != 6 || h != 2 {
		t.Errorf("bounds = %dx%d", w, h)
	}
	if c := buf.Get(1, 0); c.Rune != 0 {
		t.Errorf("resize did not clear: %+v", c)
	}
	if c := buf.Get(9, 9); c != (Cell{}) {
		t.Errorf("out of bounds = %+v", c)
	}
}

func TestDrawWorld(t *testing.T) {
	w := sim.NewWorld(10, 10, 8)
	a := sim.NewBuilding(sim.BlockBufferedBridge, core.Point{X: 0, Y: 0}, 0)
	a.Link, a.HasLink = core.Point{X: 3, Y: 0}, true
	for _, b := range []*sim.Building{
		a,
		sim.NewBuilding(sim.BlockBufferedBridge, core.Point{X: 3, Y: 0}, 0),
		sim.NewBuilding(sim.BlockJunction, core.Point{X: 0, Y: 1}, 0),
	} {
		if err := w.Place(b); err != nil {
			t.Fatal(err)
		}
	}
	buf := NewRenderBuffer(40, 20)
	cam := testCamera()
	DrawWorld(buf, cam, w)

	if c := buf.Get(0, 18); c.Rune != '≡' || c.Bg != RgbBridgeBg {
		t.Errorf("bridge tile = %+v", c)
	}
	if c := buf.Get(0, 16); c.Rune != '┼' || c.Bg != RgbJunctBg {
		t.Errorf("junction tile = %+v", c)
	}
	// Link line between the two bridge footprints on the center row
	if c := buf.Get(6, 19); c.Rune != '─' {
		t.Errorf("link cell = %+v", c)
	}
	if c := buf.Get(3, 19); c.Rune == '─' {
		t.Error("link drawn over the bridge footprint")
	}
}

func TestHUD(t *testing.T) {
	reg := status.NewRegistry()
	reg.Ints.Get("overlay.drawn").Store(3)
	buf := NewRenderBuffer(60, 1)
	hud := HUD{Metrics: reg, Prefix: "overlay."}

	hud.Draw(buf, 0, 42, true)
	var line strings.Builder
	for x := 0; x < 60; x++ {
		if r := buf.Get(x, 0).Rune; r != 0 {
			line.WriteRune(r)
		}
	}
	got := line.String()
	if !strings.Contains(got, "t=42") || !strings.Contains(got, "PAUSED") || !strings.Contains(got, "drawn=3") {
		t.Errorf("hud = %q", got)
	}
	if buf.Get(59, 0).Bg != RgbPausedBg {
		t.Errorf("paused bg = %v", buf.Get(59, 0).Bg)
	}

	reg.Ints.Get("overlay.stuck").Store(1)
	hud.Draw(buf, 0, 43, false)
	if buf.Get(0, 0).Bg != RgbStuckBg {
		t.Errorf("stuck bg = %v", buf.Get(0, 0).Bg)
	}
}
