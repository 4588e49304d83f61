package astar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a grid is created with a non-positive size.
	ErrInvalidConfiguration = errors.New("invalid grid configuration")

	// ErrInvalidState is returned when an edit would create a second Start or End,
	// or make the Start and End cells coincide.
	ErrInvalidState = errors.New("invalid cell state")

	// ErrOutOfBounds is returned when a cell lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// Cell identifies a grid position. It is a plain value and is used directly
// as a map key by the search.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// State is the classification of a cell.
type State uint8

const (
	Free State = iota
	Blocked
	Start
	End
	Frontier
	Visited
	Path
)

var stateNames = [...]string{
	Free:     "free",
	Blocked:  "blocked",
	Start:    "start",
	End:      "end",
	Frontier: "frontier",
	Visited:  "visited",
	Path:     "path",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Free, fmt.Errorf("%w: unknown state %q", ErrInvalidState, name)
}

// Grid is a square matrix of classified cells.
//
// At most one cell holds Start and at most one holds End. SetState rejects a
// second Start or End instead of moving it; clear the current holder first.
type Grid struct {
	rows   int
	states []State

	start, end       Cell
	hasStart, hasEnd bool
}

// NewGrid returns a rows×rows grid with every cell Free.
func NewGrid(rows int) (*Grid, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfiguration, rows)
	}
	return &Grid{
		rows:   rows,
		states: make([]State, rows*rows),
	}, nil
}

// Rows returns the grid dimension.
func (g *Grid) Rows() int { return g.rows }

// Contains reports whether the cell lies inside the grid.
func (g *Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.rows
}

func (g *Grid) index(c Cell) int { return c.Row*g.rows + c.Col }

// State returns the classification of c. Cells outside the grid report Blocked.
func (g *Grid) State(c Cell) State {
	if !g.Contains(c) {
		return Blocked
	}
	return g.states[g.index(c)]
}

// Start returns the Start cell, if one is set.
func (g *Grid) Start() (Cell, bool) { return g.start, g.hasStart }

// End returns the End cell, if one is set.
func (g *Grid) End() (Cell, bool) { return g.end, g.hasEnd }

// SetState classifies c.
//
// Assigning Start while another cell is Start (or End while another cell is
// End) fails with ErrInvalidState, as does turning the Start cell into End or
// the End cell into Start. Overwriting the current Start or End cell with any
// other state releases that endpoint.
func (g *Grid) SetState(c Cell, s State) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.rows, g.rows)
	}
	if int(s) >= len(stateNames) {
		return fmt.Errorf("%w: %v", ErrInvalidState, s)
	}

	switch s {
	case Start:
		if g.hasStart && g.start != c {
			return fmt.Errorf("%w: start already set at %v", ErrInvalidState, g.start)
		}
		if g.hasEnd && g.end == c {
			return fmt.Errorf("%w: %v is the end cell", ErrInvalidState, c)
		}
	case End:
		if g.hasEnd && g.end != c {
			return fmt.Errorf("%w: end already set at %v", ErrInvalidState, g.end)
		}
		if g.hasStart && g.start == c {
			return fmt.Errorf("%w: %v is the start cell", ErrInvalidState, c)
		}
	}

	if g.hasStart && g.start == c && s != Start {
		g.hasStart = false
	}
	if g.hasEnd && g.end == c && s != End {
		g.hasEnd = false
	}

	switch s {
	case Start:
		g.start, g.hasStart = c, true
	case End:
		g.end, g.hasEnd = c, true
	}
	g.states[g.index(c)] = s
	return nil
}

// Clear resets c to Free, releasing Start or End if c held one.
func (g *Grid) Clear(c Cell) error {
	return g.SetState(c, Free)
}

// Reset returns every cell to Free.
func (g *Grid) Reset() {
	for i := range g.states {
		g.states[i] = Free
	}
	g.hasStart, g.hasEnd = false, false
}

// ClearSearch turns Frontier, Visited and Path cells back to Free, leaving
// walls and endpoints untouched.
func (g *Grid) ClearSearch() {
	for i, s := range g.states {
		switch s {
		case Frontier, Visited, Path:
			g.states[i] = Free
		}
	}
}

// Cells calls fn for every cell in row-major order.
func (g *Grid) Cells(fn func(c Cell, s State)) {
	for i, s := range g.states {
		fn(Cell{Row: i / g.rows, Col: i % g.rows}, s)
	}
}

// neighborOffsets fixes the enumeration order: south, north, east, west.
var neighborOffsets = [4]Cell{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// NeighborsOf returns the in-bounds, non-Blocked orthogonal neighbors of c
// in south, north, east, west order.
func (g *Grid) NeighborsOf(c Cell) []Cell {
	neighbors := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.Contains(n) && g.State(n) != Blocked {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Adjacency is a frozen copy of every cell's neighbor list.
type Adjacency struct {
	rows      int
	neighbors [][]Cell
}

// SnapshotAdjacency computes NeighborsOf for every cell. Later edits to the
// grid do not affect the returned snapshot.
func (g *Grid) SnapshotAdjacency() Adjacency {
	adj := Adjacency{rows: g.rows, neighbors: make([][]Cell, len(g.states))}
	for i := range g.states {
		adj.neighbors[i] = g.NeighborsOf(Cell{Row: i / g.rows, Col: i % g.rows})
	}
	return adj
}

// Neighbors returns the frozen neighbor list of c, or nil if c is outside the snapshot.
func (a Adjacency) Neighbors(c Cell) []Cell {
	if c.Row < 0 || c.Row >= a.rows || c.Col < 0 || c.Col >= a.rows {
		return nil
	}
	return a.neighbors[c.Row*a.rows+c.Col]
}
