package overlay

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/item"
	"github.com/lixenwraith/transit-overlay/structure"
)

const testTile = 8.0

type fakeWorld struct {
	w, h       int
	structures map[core.Point]structure.Structure
	order      []core.Point
	editor     bool
}

func newFakeWorld(w, h int) *fakeWorld {
	return &fakeWorld{w: w, h: h, structures: make(map[core.Point]structure.Structure)}
}

func (f *fakeWorld) add(s structure.Structure) {
	s.Center = s.Pos.World(testTile)
	if _, ok := f.structures[s.Pos]; !ok {
		f.order = append(f.order, s.Pos)
	}
	f.structures[s.Pos] = s
}

func (f *fakeWorld) Positions() []core.Point { return append([]core.Point(nil), f.order...) }

func (f *fakeWorld) StructureAt(p core.Point) (structure.Structure, bool) {
	s, ok := f.structures[p]
	return s, ok
}

func (f *fakeWorld) TileSize() float64 { return testTile }
func (f *fakeWorld) Size() (int, int) { return f.w, f.h }
func (f *fakeWorld) Editor() bool { return f.editor }
func (f *fakeWorld) remove(p core.Point) { delete(f.structures, p) }

type fakeCamera struct{ rect core.Rect }

func (c *fakeCamera) VisibleWorldRect() core.Rect { return c.rect }

type iconCall struct {
	item        string
	x, y        float64
	size, alpha float64
}

type fakeDrawer struct {
	calls  []iconCall
	begins int
	resets int
	layer  float64
}

func (d *fakeDrawer) Begin(layer float64) {
	d.begins++
	d.layer = layer
}

func (d *fakeDrawer) DrawIcon(desc item.Descriptor, x, y, size, alpha float64) {
	d.calls = append(d.calls, iconCall{item: desc.Name, x: x, y: y, size: size, alpha: alpha})
}

func (d *fakeDrawer) Reset() { d.resets++ }

func testCatalog() *item.Catalog {
	c := item.NewCatalog()
	c.Add("copper", 'c', core.RGB{R: 217, G: 157, B: 115})
	c.Add("lead", 'l', core.RGB{R: 140, G: 127, B: 169})
	c.Add("coal", 'o', core.RGB{R: 39, G: 39, B: 39})
	return c
}
