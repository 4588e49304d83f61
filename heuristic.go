package astar

// Heuristic returns the estimated cost from one cell to another.
type Heuristic func(from Cell, to Cell) int

// Manhattan is the sum of the row and column distances. It never
// overestimates for unit-cost 4-directional movement.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
