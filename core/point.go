package core

import "fmt"

// Point is a grid coordinate: X is the column, Y is the row
type Point struct {
	X, Y int
}

// Offgrid is the position carried by an entity after it leaves the world
// Never a live location; kept only so stale references are easy to spot in logs
var Offgrid = Point{X: -1, Y: -1}

// Cardinal unit steps in scan order: right, up, down, left
var (
	Right = Point{X: 1}
	Up    = Point{Y: -1}
	Down  = Point{Y: 1}
	Left  = Point{X: -1}
)

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// DistanceSquared is the targeting metric used by nearest-of-kind searches
func (p Point) DistanceSquared(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Adjacent reports whether o is exactly one 4-directional step from p
// Diagonal neighbours and p itself are not adjacent
func (p Point) Adjacent(o Point) bool {
	return abs(p.X-o.X)+abs(p.Y-o.Y) == 1
}

// Neighbors returns the four cardinal neighbours in scan order
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		p.Add(Right),
		p.Add(Up),
		p.Add(Down),
		p.Add(Left),
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
