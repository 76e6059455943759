package model

// Coord identifies a cell on the unbounded plane
type Coord struct {
	X int
	Y int
}

// neighborOffsets lists the 8 surrounding cells, orthogonal and diagonal alike
var neighborOffsets = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Add returns the coordinate translated by other
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Neighbors returns the 8 cells adjacent to c
func (c Coord) Neighbors() [8]Coord {
	var out [8]Coord
	for i, off := range neighborOffsets {
		out[i] = c.Add(off)
	}
	return out
}

// Less orders coordinates row-major: by Y, then by X
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Rect is an inclusive bounding rectangle
type Rect struct {
	Min Coord
	Max Coord
}

// Width returns the number of columns covered by r
func (r Rect) Width() int {
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows covered by r
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y + 1
}

// Area returns the number of cells covered by r
func (r Rect) Area() int {
	return r.Width() * r.Height()
}
