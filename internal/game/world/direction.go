// Package world provides the bordered tile grid: terrain, entity placement,
// movement validation, and map generation.
package world

import "fmt"

// Direction represents a compass direction the player can step in.
type Direction string

// Cardinal directions.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// StandardDirections contains all four cardinal directions.
var StandardDirections = []Direction{North, South, East, West}

// IsStandard reports whether d is one of the four cardinal directions.
func (d Direction) IsStandard() bool {
	for _, sd := range StandardDirections {
		if d == sd {
			return true
		}
	}
	return false
}

// Delta returns the (dx, dy) step for d. Y grows downward.
// Non-standard directions return (0, 0).
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite of a standard direction.
// For any other direction, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Position is a cell coordinate on the grid, (0, 0) being the top-left border corner.
type Position struct {
	X int
	Y int
}

// Step returns the position one step away in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Offset returns the position shifted by (dx, dy).
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
