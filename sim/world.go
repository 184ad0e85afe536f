package sim

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/structure"
	"github.com/lixenwraith/transit-overlay/transit"
	"github.com/lixenwraith/transit-overlay/vmath"
)

// World is a grid of buildings advanced by Update
// Not safe for concurrent use; the demo updates and renders on one goroutine
type World struct {
	width, height int
	tileSize      float64
	editor        bool

	tiles     map[core.Point]*Building
	order     []core.Point // all buildings, row-major
	transport []core.Point // transport structures only

	last    float64
	started bool
}

// NewWorld creates an empty width x height world
func NewWorld(width, height int, tileSize float64) *World {
	return &World{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make(map[core.Point]*Building),
	}
}

// SetEditor toggles editor/preview mode
func (w *World) SetEditor(on bool) { w.editor = on }

// Place adds a building, replacing nothing: the tile must be free and in bounds
func (w *World) Place(b *Building) error {
	p := b.Pos
	if p.X < 0 || p.Y < 0 || p.X >= w.width || p.Y >= w.height {
		return fmt.Errorf("place %v: outside %dx%d world", p, w.width, w.height)
	}
	if _, ok := w.tiles[p]; ok {
		return fmt.Errorf("place %v: tile occupied", p)
	}
	b.alloc()
	w.tiles[p] = b
	w.reindex()
	return nil
}

// Remove deletes the building at p; links pointing at it break
func (w *World) Remove(p core.Point) bool {
	if _, ok := w.tiles[p]; !ok {
		return false
	}
	delete(w.tiles, p)
	w.reindex()
	return true
}

// Building returns the building at p
func (w *World) Building(p core.Point) (*Building, bool) {
	b, ok := w.tiles[p]
	return b, ok
}

// Buildings returns every building, row-major
func (w *World) Buildings() []*Building {
	out := make([]*Building, 0, len(w.order))
	for _, p := range w.order {
		out = append(out, w.tiles[p])
	}
	return out
}

// Bridges lists buffered bridge positions, row-major
func (w *World) Bridges() []core.Point {
	var out []core.Point
	for _, p := range w.order {
		if w.tiles[p].Block == BlockBufferedBridge {
			out = append(out, p)
		}
	}
	return out
}

func (w *World) reindex() {
	w.order = w.order[:0]
	w.transport = w.transport[:0]
	for p := range w.tiles {
		w.order = append(w.order, p)
	}
	sort.Slice(w.order, func(i, j int) bool {
		if w.order[i].Y != w.order[j].Y {
			return w.order[i].Y < w.order[j].Y
		}
		return w.order[i].X < w.order[j].X
	})
	for _, p := range w.order {
		if w.tiles[p].Block.Transport() != structure.KindUnknown {
			w.transport = append(w.transport, p)
		}
	}
}

// Positions lists every transport structure tile
func (w *World) Positions() []core.Point {
	return append([]core.Point(nil), w.transport...)
}

// TileSize returns the world-unit edge of a tile
func (w *World) TileSize() float64 { return w.tileSize }

// Size returns the world dimensions in tiles
func (w *World) Size() (int, int) { return w.width, w.height }

// Editor reports editor/preview mode
func (w *World) Editor() bool { return w.editor }

// StructureAt returns a frame-scoped view of the transport structure at p
func (w *World) StructureAt(p core.Point) (structure.Structure, bool) {
	b, ok := w.tiles[p]
	if !ok {
		return structure.Structure{}, false
	}
	kind := b.Block.Transport()
	if kind == structure.KindUnknown {
		return structure.Structure{}, false
	}

	s := structure.Structure{
		Kind:     kind,
		Pos:      p,
		Center:   p.World(w.tileSize),
		Rotation: b.Rotation,
		Items:    b.items,
	}
	switch kind {
	case structure.KindBufferedBridge:
		b.bridgeView = structure.BufferedBridge{
			Buffer:    transit.Buffer{Records: b.buffer, Index: b.index},
			Capacity:  b.Capacity,
			Speed:     b.Speed,
			TimeScale: b.TimeScale,
			Warmup:    b.warmup,
		}
		if target, ok := w.linkTarget(b); ok {
			b.bridgeView.LinkValid = true
			b.bridgeView.Link = target.Pos
			b.bridgeView.LinkPos = target.Pos.World(w.tileSize)
		}
		s.Bridge = &b.bridgeView
	case structure.KindJunction:
		for i := range b.lanes {
			b.laneRecords[i] = b.lanes[i]
			b.laneIndexes[i] = b.laneIdx[i]
		}
		b.junctionView = structure.Junction{
			Lanes:        transit.LaneBuffer{Records: b.laneRecords, Indexes: b.laneIndexes},
			LaneCapacity: b.Capacity,
			Speed:        b.Speed,
			TimeScale:    b.TimeScale,
		}
		s.Junction = &b.junctionView
	}
	return s, true
}

// linkTarget resolves a bridge's link: same block, straight line, within range
func (w *World) linkTarget(b *Building) (*Building, bool) {
	if !b.HasLink {
		return nil, false
	}
	t, ok := w.tiles[b.Link]
	if !ok || t == b || t.Block != b.Block {
		return nil, false
	}
	dx, dy := b.Link.X-b.Pos.X, b.Link.Y-b.Pos.Y
	if dx != 0 && dy != 0 {
		return nil, false
	}
	if max(abs(dx), abs(dy)) > BridgeRange {
		return nil, false
	}
	return t, true
}

// Update advances every building to tick now
func (w *World) Update(now float64) {
	if !w.started {
		w.started, w.last = true, now
	}
	delta := now - w.last
	w.last = now
	if delta <= 0 {
		return
	}

	for _, p := range w.order {
		b, ok := w.tiles[p]
		if !ok {
			continue
		}
		switch b.Block {
		case BlockSource:
			w.updateSource(b, now)
		case BlockBufferedBridge:
			w.updateBridge(b, now, delta)
		case BlockJunction:
			w.updateJunction(b, now)
		case BlockSimpleBridge, BlockPassthrough:
			w.updateForward(b, now)
		}
	}
}

func (w *World) updateSource(b *Building, now float64) {
	if now < b.next {
		return
	}
	if w.offer(b.Pos, b.Pos.Add(vmath.D4X(b.Rotation), vmath.D4Y(b.Rotation)), b.Item, now) {
		b.next = now + b.Period
	}
}

func (w *World) updateBridge(b *Building, now, delta float64) {
	target, linked := w.linkTarget(b)
	if !linked {
		b.warmup = 0
		w.dump(b, now)
		return
	}
	b.warmup = min(1, b.warmup+delta/WarmupTicks)

	if item, ok := b.peekItem(); ok && b.pushBuffer(item, now) {
		b.takeItem()
	}
	if item, ok := b.pollBuffer(now); ok && target.Held() < ItemCapacity {
		target.addItem(item)
		b.popBuffer()
	}
}

func (w *World) updateJunction(b *Building, now float64) {
	for lane := range b.lanes {
		item, ok := b.pollLane(lane, now)
		if !ok {
			continue
		}
		dest := b.Pos.Add(vmath.D4X(lane), vmath.D4Y(lane))
		if w.offer(b.Pos, dest, item, now) {
			b.popLane(lane)
		}
	}
}

func (w *World) updateForward(b *Building, now float64) {
	if now-b.lastMove < ForwardEvery {
		return
	}
	if w.dump(b, now) {
		b.lastMove = now
	}
}

// dump moves one inventory item to the building's facing neighbor
func (w *World) dump(b *Building, now float64) bool {
	item, ok := b.peekItem()
	if !ok {
		return false
	}
	if w.offer(b.Pos, b.Pos.Add(vmath.D4X(b.Rotation), vmath.D4Y(b.Rotation)), item, now) {
		b.takeItem()
		return true
	}
	return false
}

// offer hands item from the tile at from to the tile at to
func (w *World) offer(from, to core.Point, item int, now float64) bool {
	dst, ok := w.tiles[to]
	if !ok {
		return false
	}
	switch dst.Block {
	case BlockSink:
		dst.Consumed++
		return true
	case BlockJunction:
		lane := vmath.RelativeDir(from.X, from.Y, to.X, to.Y)
		if lane < 0 {
			return false
		}
		if _, ok := w.tiles[to.Add(vmath.D4X(lane), vmath.D4Y(lane))]; !ok {
			return false
		}
		return dst.pushLane(lane, item, now)
	case BlockBufferedBridge, BlockSimpleBridge, BlockPassthrough:
		if dst.Held() >= ItemCapacity {
			return false
		}
		dst.addItem(item)
		return true
	default:
		return false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
