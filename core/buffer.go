package core

// Point is an integer tile coordinate
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// World returns the world-space center of the tile at p
func (p Point) World(tileSize float64) Vec {
	return Vec{float64(p.X) * tileSize, float64(p.Y) * tileSize}
}
