package core

// Vec is a point or offset in world units
type Vec struct {
	X, Y float64
}

// Add returns v + o
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle, X/Y is the minimum corner
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectCentered builds a rect of the given size around (cx, cy)
func RectCentered(cx, cy, width, height float64) Rect {
	return Rect{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
}

// MaxX returns the right edge
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Grow expands the rect by amount in total on each axis, keeping the center
func (r Rect) Grow(amount float64) Rect {
	return Rect{
		X:      r.X - amount/2,
		Y:      r.Y - amount/2,
		Width:  r.Width + amount,
		Height: r.Height + amount,
	}
}

// Contains reports whether (x, y) lies inside r, edges inclusive
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Overlaps reports whether r and o share interior area
// Touching edges do not overlap
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X && r.Y < o.MaxY() && r.MaxY() > o.Y
}

// Scaled divides every component by unit, converting world units to tile units
func (r Rect) Scaled(unit float64) Rect {
	if unit == 0 {
		return r
	}
	return Rect{X: r.X / unit, Y: r.Y / unit, Width: r.Width / unit, Height: r.Height / unit}
}
