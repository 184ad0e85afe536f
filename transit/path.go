package transit

import (
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/vmath"
)

// Path is the straight segment an item travels within a structure
type Path struct {
	Begin, End core.Vec
}

// At returns the point at fraction f of the path
func (p Path) At(f float64) core.Vec {
	return core.Vec{
		X: vmath.Lerp(p.Begin.X, p.End.X, f),
		Y: vmath.Lerp(p.Begin.Y, p.End.Y, f),
	}
}

// Link describes a buffered bridge's connection to its remote end
type Link struct {
	Valid  bool
	From   core.Point // own tile
	To     core.Point // linked tile
	Target core.Vec   // linked structure center, world units
	Warmup float64    // 0 just linked, 1 fully active
}

// StubPath is drawn for a bridge whose link is broken: the tile's bottom edge
func StubPath(center core.Vec, tileSize float64) Path {
	h := tileSize / 2
	return Path{
		Begin: core.Vec{X: center.X - h, Y: center.Y - h},
		End:   core.Vec{X: center.X + h, Y: center.Y - h},
	}
}

// BridgePath returns the travel path of a buffered bridge
// A valid link runs edge to edge toward the linked structure, with the far end
// pulled toward the near end by warmup; editor mode always shows the full path
func BridgePath(center core.Vec, link Link, tileSize float64, editor bool) Path {
	if !link.Valid {
		return StubPath(center, tileSize)
	}
	dir := vmath.RelativeDir(link.From.X, link.From.Y, link.To.X, link.To.Y)
	if dir < 0 {
		return StubPath(center, tileSize)
	}
	back := vmath.Opposite(dir)
	h := tileSize / 2

	begin := core.Vec{
		X: center.X + float64(vmath.D4X(dir))*h,
		Y: center.Y + float64(vmath.D4Y(dir))*h,
	}
	end := core.Vec{
		X: link.Target.X + float64(vmath.D4X(back))*h,
		Y: link.Target.Y + float64(vmath.D4Y(back))*h,
	}

	warmup := vmath.Clamp01(link.Warmup)
	if editor {
		warmup = 1
	}
	return Path{Begin: begin, End: Path{Begin: begin, End: end}.At(warmup)}
}

// JunctionPath returns the path of lane (the direction items travel)
// Items enter a quarter tile behind center and leave at the far edge,
// both offset a quarter tile toward the next direction so lanes do not overlap
func JunctionPath(center core.Vec, lane int, tileSize float64) Path {
	to := vmath.FloorMod(lane+1, 4)
	q, h := tileSize/4, tileSize/2
	fx, fy := float64(vmath.D4X(lane)), float64(vmath.D4Y(lane))
	tx, ty := float64(vmath.D4X(to)), float64(vmath.D4Y(to))
	return Path{
		Begin: core.Vec{X: center.X - fx*q + tx*q, Y: center.Y - fy*q + ty*q},
		End:   core.Vec{X: center.X + fx*h + tx*q, Y: center.Y + fy*h + ty*q},
	}
}

// StackOffset returns where the count-th inventory icon of a structure sits
// Icons stack upward from just above the tile's bottom edge
func StackOffset(center core.Vec, count int, tileSize float64) core.Vec {
	return core.Vec{
		X: center.X,
		Y: center.Y - tileSize/2 + tileSize/8 + 0.075*tileSize*float64(count),
	}
}

// IconSize is the drawn icon edge length for a tile size
func IconSize(tileSize float64) float64 { return tileSize / 2 }
