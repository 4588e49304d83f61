package astar

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/astargrid/internal/chain"
)

// ErrBrokenChain is returned when a predecessor walk from the end cell does
// not arrive at the start cell.
var ErrBrokenChain = errors.New("broken predecessor chain")

// Reconstruct walks predecessors back from end to the grid's Start cell.
//
// Every walked cell other than Start triggers one observer call, in walk
// order (end first). Cells between the endpoints are classified as Path;
// Start and End keep their classification. The returned path runs from
// Start to End inclusive. Nothing is marked if the chain is broken.
func Reconstruct(grid *Grid, predecessors map[Cell]Cell, end Cell, observer Observer) ([]Cell, error) {
	start, ok := grid.Start()
	if !ok {
		return nil, fmt.Errorf("%w: grid has no start cell", ErrBrokenChain)
	}

	path, root, ok := chain.Walk(predecessors, end)
	if !ok {
		return nil, fmt.Errorf("%w: cycle reached from %v", ErrBrokenChain, end)
	}
	if root != start {
		return nil, fmt.Errorf("%w: walk from %v stopped at %v, want %v", ErrBrokenChain, end, root, start)
	}

	for i := len(path) - 1; i > 0; i-- {
		c := path[i]
		if c != end {
			if err := grid.SetState(c, Path); err != nil {
				return nil, err
			}
		}
		observer.notify()
	}
	return path, nil
}
