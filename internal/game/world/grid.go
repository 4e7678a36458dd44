package world

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/rogue/internal/game/dice"
)

var (
	// ErrBlocked is returned when placing onto a wall or outside the grid.
	ErrBlocked = errors.New("world: cell is blocked")
	// ErrOccupied is returned when placing onto a cell that already holds an entity.
	ErrOccupied = errors.New("world: cell is occupied")
	// ErrNoFreeTile is returned when no empty floor cell remains.
	ErrNoFreeTile = errors.New("world: no free floor tile")
)

// Terrain is the static content of a cell.
type Terrain rune

const (
	// TerrainWall is an impassable wall.
	TerrainWall Terrain = '#'
	// TerrainFloor is walkable floor.
	TerrainFloor Terrain = '.'
)

// IsPassable reports whether the terrain can be walked on.
func (t Terrain) IsPassable() bool {
	return t == TerrainFloor
}

// OccupantKind identifies what kind of entity stands on a cell.
type OccupantKind int

const (
	OccupantPlayer OccupantKind = iota + 1
	OccupantEnemy
)

// Occupant is an entity marker stored on the grid.
type Occupant struct {
	ID   string
	Kind OccupantKind
}

// TileKind is what a rendered cell shows.
type TileKind rune

const (
	TileWall   TileKind = '#'
	TileFloor  TileKind = '.'
	TilePlayer TileKind = 'P'
	TileEnemy  TileKind = 'E'
)

// Grid is a rectangular tile map whose outermost ring is always wall.
// It is not safe for concurrent use.
//
// Invariant: every border cell is TerrainWall; at most one Occupant per cell.
type Grid struct {
	width     int
	height    int
	terrain   [][]Terrain
	occupants map[Position]Occupant
}

// NewGrid builds a Grid from rows of terrain.
//
// Precondition: rows must be rectangular, at least 3x3, and bordered by walls.
// Postcondition: Returns a Grid with no occupants, or a descriptive error.
func NewGrid(rows [][]Terrain) (*Grid, error) {
	if len(rows) < 3 {
		return nil, fmt.Errorf("grid must have at least 3 rows, got %d", len(rows))
	}
	width := len(rows[0])
	if width < 3 {
		return nil, fmt.Errorf("grid must have at least 3 columns, got %d", width)
	}
	terrain := make([][]Terrain, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid row %d has %d columns, want %d", y, len(row), width)
		}
		terrain[y] = make([]Terrain, width)
		for x, t := range row {
			if t != TerrainWall && t != TerrainFloor {
				return nil, fmt.Errorf("grid cell (%d, %d): unknown terrain %q", x, y, rune(t))
			}
			border := y == 0 || y == len(rows)-1 || x == 0 || x == width-1
			if border && t != TerrainWall {
				return nil, fmt.Errorf("grid cell (%d, %d): border must be wall", x, y)
			}
			terrain[y][x] = t
		}
	}
	return &Grid{
		width:     width,
		height:    len(rows),
		terrain:   terrain,
		occupants: make(map[Position]Occupant),
	}, nil
}

// ParseGrid builds a Grid from text rows of '#' and '.' characters.
//
// Postcondition: Returns a Grid or an error from NewGrid.
func ParseGrid(lines []string) (*Grid, error) {
	rows := make([][]Terrain, len(lines))
	for y, line := range lines {
		for _, r := range line {
			rows[y] = append(rows[y], Terrain(r))
		}
	}
	return NewGrid(rows)
}

var standardMap = []string{
	"###########",
	"#.........#",
	"#.........#",
	"#.........#",
	"#.........#",
	"#.........#",
	"#.........#",
	"###########",
}

// Standard returns the fixed preset map: a 9x6 open room inside its border.
func Standard() *Grid {
	g, err := ParseGrid(standardMap)
	if err != nil {
		panic("world: standard map is invalid: " + err.Error())
	}
	return g
}

// Generate produces a (width+2) x (height+2) grid with a solid border and
// interior walls scattered by an independent Bernoulli draw per cell.
//
// Precondition: width >= 1; height >= 1; src must be non-nil.
// Postcondition: Returns a bordered Grid or an error for invalid dimensions.
func Generate(width, height int, wallProbability float64, src dice.Source) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("generated map must be at least 1x1, got %dx%d", width, height)
	}
	rows := make([][]Terrain, height+2)
	for y := range rows {
		rows[y] = make([]Terrain, width+2)
		for x := range rows[y] {
			border := y == 0 || y == height+1 || x == 0 || x == width+1
			if border || dice.Chance(src, wallProbability) {
				rows[y][x] = TerrainWall
			} else {
				rows[y][x] = TerrainFloor
			}
		}
	}
	return NewGrid(rows)
}

// Width returns the full width including the border.
func (g *Grid) Width() int { return g.width }

// Height returns the full height including the border.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// TerrainAt returns the terrain at pos.
//
// Postcondition: Returns (terrain, true) when in bounds, or (TerrainWall, false) otherwise.
func (g *Grid) TerrainAt(pos Position) (Terrain, bool) {
	if !g.InBounds(pos.X, pos.Y) {
		return TerrainWall, false
	}
	return g.terrain[pos.Y][pos.X], true
}

// IsWalkable reports whether (x, y) is in bounds and not a wall.
// Bounds are checked before any tile access.
func (g *Grid) IsWalkable(x, y int) bool {
	t, ok := g.TerrainAt(Position{X: x, Y: y})
	return ok && t.IsPassable()
}

// OccupantAt returns the entity on pos, if any.
func (g *Grid) OccupantAt(pos Position) (Occupant, bool) {
	occ, ok := g.occupants[pos]
	return occ, ok
}

// Place marks occ on pos.
//
// Postcondition: Returns ErrBlocked for walls or out-of-bounds cells, ErrOccupied
// when another entity is already there; otherwise the cell holds occ.
func (g *Grid) Place(occ Occupant, pos Position) error {
	if !g.IsWalkable(pos.X, pos.Y) {
		return fmt.Errorf("placing %q at %s: %w", occ.ID, pos, ErrBlocked)
	}
	if existing, ok := g.occupants[pos]; ok {
		return fmt.Errorf("placing %q at %s held by %q: %w", occ.ID, pos, existing.ID, ErrOccupied)
	}
	g.occupants[pos] = occ
	return nil
}

// Clear removes and returns whatever entity stands on pos.
func (g *Grid) Clear(pos Position) (Occupant, bool) {
	occ, ok := g.occupants[pos]
	if ok {
		delete(g.occupants, pos)
	}
	return occ, ok
}

// OccupantCount returns the number of marked cells.
func (g *Grid) OccupantCount() int { return len(g.occupants) }

// FreeCells returns every walkable, unoccupied cell in row-major order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (g *Grid) FreeCells() []Position {
	free := []Position{}
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			pos := Position{X: x, Y: y}
			if !g.terrain[y][x].IsPassable() {
				continue
			}
			if _, taken := g.occupants[pos]; taken {
				continue
			}
			free = append(free, pos)
		}
	}
	return free
}

// FindFreeCell draws random interior cells until an empty floor cell turns up.
// After maxAttempts misses it falls back to a uniform pick from FreeCells, so it
// always terminates.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a free Position, or ErrNoFreeTile when none exist.
func (g *Grid) FindFreeCell(src dice.Source, maxAttempts int) (Position, error) {
	for i := 0; i < maxAttempts; i++ {
		pos := Position{
			X: 1 + src.Intn(g.width-2),
			Y: 1 + src.Intn(g.height-2),
		}
		if !g.terrain[pos.Y][pos.X].IsPassable() {
			continue
		}
		if _, taken := g.occupants[pos]; taken {
			continue
		}
		return pos, nil
	}
	free := g.FreeCells()
	if len(free) == 0 {
		return Position{}, ErrNoFreeTile
	}
	return dice.Pick(src, free), nil
}

// PlaceRandom places occ on a random free cell found by FindFreeCell.
//
// Postcondition: Returns the chosen Position, or ErrNoFreeTile with the grid unchanged.
func (g *Grid) PlaceRandom(occ Occupant, src dice.Source, maxAttempts int) (Position, error) {
	pos, err := g.FindFreeCell(src, maxAttempts)
	if err != nil {
		return Position{}, err
	}
	if err := g.Place(occ, pos); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// FirstWalkable returns the first walkable, unoccupied interior cell in row-major order.
func (g *Grid) FirstWalkable() (Position, bool) {
	free := g.FreeCells()
	if len(free) == 0 {
		return Position{}, false
	}
	return free[0], true
}

// RenderTiles returns a fresh 2D snapshot of what each cell shows, indexed [y][x].
func (g *Grid) RenderTiles() [][]TileKind {
	out := make([][]TileKind, g.height)
	for y := range out {
		out[y] = make([]TileKind, g.width)
		for x := range out[y] {
			out[y][x] = TileKind(g.terrain[y][x])
		}
	}
	for pos, occ := range g.occupants {
		switch occ.Kind {
		case OccupantPlayer:
			out[pos.Y][pos.X] = TilePlayer
		case OccupantEnemy:
			out[pos.Y][pos.X] = TileEnemy
		}
	}
	return out
}
