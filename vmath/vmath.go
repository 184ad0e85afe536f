package vmath

import "math"

// Cardinal directions, counter-clockwise from +X: right, up(+Y), left, down(-Y)
const (
	DirRight = 0
	DirUp    = 1
	DirLeft  = 2
	DirDown  = 3
)

var (
	d4x = [4]int{1, 0, -1, 0}
	d4y = [4]int{0, 1, 0, -1}
)

// D4X returns the X step of direction dir (taken mod 4)
func D4X(dir int) int { return d4x[FloorMod(dir, 4)] }

// D4Y returns the Y step of direction dir (taken mod 4)
func D4Y(dir int) int { return d4y[FloorMod(dir, 4)] }

// FloorMod returns a mod n with the sign of n
func FloorMod(a, n int) int {
	m := a % n
	if m != 0 && (m < 0) != (n < 0) {
		m += n
	}
	return m
}

// Opposite returns the reverse direction
func Opposite(dir int) int { return FloorMod(dir+2, 4) }

// Lerp performs linear interpolation between a and b
// t=0 returns a, t=1 returns b, no clamping
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps v into [0, 1], NaN maps to 0
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RelativeDir returns the dominant-axis direction from (x, y) toward (cx, cy)
// Returns -1 when both points are the same tile
func RelativeDir(x, y, cx, cy int) int {
	dx, dy := cx-x, cy-y
	if dx == 0 && dy == 0 {
		return -1
	}
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dy > 0 {
		return DirUp
	}
	return DirDown
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
