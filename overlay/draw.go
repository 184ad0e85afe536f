package overlay

import (
	"github.com/lixenwraith/transit-overlay/structure"
	"github.com/lixenwraith/transit-overlay/transit"
)

// drawInventory stacks one icon per held item above the tile's bottom edge
func (r *Renderer) drawInventory(s *structure.Structure, alpha float64) int {
	if len(s.Items) == 0 {
		return 0
	}
	tile := r.ctx.tileSize
	size := transit.IconSize(tile)
	catalog := r.deps.Catalog
	items := catalog.Len()

	count := 0
	for _, st := range s.Items {
		if st.Item < 0 || st.Item >= items {
			r.decodeFault(s, &transit.DecodeInvariantError{Slot: -1, Item: st.Item, Count: 1, Reason: "inventory item out of range"})
			continue
		}
		d := catalog.ItemByIndex(st.Item)
		for k := 0; k < st.Amount; k++ {
			pos := transit.StackOffset(s.Center, count, tile)
			r.deps.Drawer.DrawIcon(d, pos.X, pos.Y, size, alpha)
			count++
		}
	}
	return count
}

// drawBridge draws the items inside a buffered bridge's transit buffer
func (r *Renderer) drawBridge(s *structure.Structure, now float64, editor bool) (int, error) {
	b := s.Bridge
	if b.Buffer.Index == 0 {
		return 0, nil
	}

	catalog := r.deps.Catalog
	snap, err := r.scratch.DecodeLinear(b.Buffer, b.Capacity, catalog.Len())
	if err != nil {
		r.decodeFault(s, err)
	}
	if snap.Empty() {
		return 0, nil
	}

	tr, err := transit.NewTransit(b.Speed, b.TimeScale, b.Capacity)
	if err != nil {
		return 0, err
	}
	tile := r.ctx.tileSize
	path := transit.BridgePath(s.Center, s.BridgeLink(), tile, editor)
	if !b.LinkValid {
		r.frame.Stuck++
	}

	size := transit.IconSize(tile)
	n := 0
	for slot, e := range snap.Entries {
		if !e.Set {
			continue
		}
		pos := tr.PositionAlong(path, slot, e.Time, now)
		r.deps.Drawer.DrawIcon(catalog.ItemByIndex(e.Item), pos.X, pos.Y, size, r.cfg.BridgeAlpha)
		n++
	}
	return n, nil
}

// drawJunction draws each non-empty lane along its quarter-turn path
func (r *Renderer) drawJunction(s *structure.Structure, now float64) (int, error) {
	j := s.Junction
	if j.Lanes.Empty() {
		return 0, nil
	}

	catalog := r.deps.Catalog
	snap, err := r.scratch.DecodeLanes(j.Lanes, j.LaneCapacity, catalog.Len())
	if err != nil {
		r.decodeFault(s, err)
	}
	if snap.Empty() {
		return 0, nil
	}

	tr, err := transit.NewTransit(j.Speed, j.TimeScale, j.LaneCapacity)
	if err != nil {
		return 0, err
	}
	tile := r.ctx.tileSize
	size := transit.IconSize(tile)

	n := 0
	for lane := 0; lane < snap.Lanes(); lane++ {
		if snap.LaneFilled(lane) == 0 {
			continue
		}
		path := transit.JunctionPath(s.Center, lane, tile)
		for slot, e := range snap.Lane(lane) {
			if !e.Set {
				continue
			}
			pos := tr.PositionAlong(path, slot, e.Time, now)
			r.deps.Drawer.DrawIcon(catalog.ItemByIndex(e.Item), pos.X, pos.Y, size, 1)
			n++
		}
	}
	return n, nil
}
