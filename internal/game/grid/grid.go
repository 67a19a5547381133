// Package grid holds map coordinates shared by actors, floor items and the
// occupancy index.
package grid

import "fmt"

// Pos is a map cell.
type Pos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// String renders the position as "(x,y)".
func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Adjacent reports whether q is one of the eight cells surrounding p.
func (p Pos) Adjacent(q Pos) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	if dx == 0 && dy == 0 {
		return false
	}
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
