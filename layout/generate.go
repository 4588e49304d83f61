package layout

import (
	"fmt"
	"math/rand"

	astar "github.com/pdrpinto/astargrid"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// Clusters is the number of random walks.
	Clusters int
	// Steps is the length of each walk.
	Steps int
	// Density is the chance that a step leaves a wall behind.
	Density float64
	Seed    int64
}

// DefaultGenerateOptions scales the walk count and length with the grid.
func DefaultGenerateOptions(rows int, seed int64) GenerateOptions {
	return GenerateOptions{
		Clusters: rows/6 + 1,
		Steps:    rows * 4,
		Density:  0.25,
		Seed:     seed,
	}
}

// Generate builds a layout with clustered walls traced by random walks and
// distinct start and end cells that are never walls. The same options
// always give the same layout. A path between the endpoints is not guaranteed.
func Generate(rows int, opts GenerateOptions) (*Layout, error) {
	if rows < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rows to place both endpoints, got %d", ErrInvalidLayout, rows)
	}
	if opts.Density < 0 || opts.Density > 1 {
		return nil, fmt.Errorf("%w: density %v outside [0, 1]", ErrInvalidLayout, opts.Density)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	randomCell := func() astar.Cell { return astar.Cell{Row: rng.Intn(rows), Col: rng.Intn(rows)} }

	start := randomCell()
	end := randomCell()
	for end == start {
		end = randomCell()
	}

	walls := make(map[astar.Cell]bool)
	directions := [4]astar.Cell{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}
	for c := 0; c < opts.Clusters; c++ {
		p := randomCell()
		for s := 0; s < opts.Steps; s++ {
			if rng.Float64() < opts.Density && p != start && p != end {
				walls[p] = true
			}
			d := directions[rng.Intn(len(directions))]
			next := astar.Cell{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if next.Row >= 0 && next.Row < rows && next.Col >= 0 && next.Col < rows {
				p = next
			}
		}
	}

	l := &Layout{Rows: rows, Start: coordOf(start), End: coordOf(end)}
	// Row-major order keeps the output independent of map iteration.
	for r := 0; r < rows; r++ {
		for c := 0; c < rows; c++ {
			if walls[astar.Cell{Row: r, Col: c}] {
				l.Walls = append(l.Walls, Coord{r, c})
			}
		}
	}
	return l, nil
}
