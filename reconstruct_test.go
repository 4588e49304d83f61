package astar

import (
	"errors"
	"reflect"
	"testing"
)

func TestReconstructMarksPath(t *testing.T) {
	start, end := Cell{0, 0}, Cell{0, 3}
	g := newTestGrid(t, 4, start, end)
	predecessors := map[Cell]Cell{
		{0, 1}: {0, 0},
		{0, 2}: {0, 1},
		{0, 3}: {0, 2},
		{1, 1}: {0, 1}, // off-path entry must be ignored
	}

	calls := 0
	path, err := Reconstruct(g, predecessors, end, func() { calls++ })
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	want := []Cell{{0, 0}, {0, 1}, {0, 2}, {0, 3}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
	if calls != 3 {
		t.Errorf("expected 3 observer calls, got %d", calls)
	}
	if g.State(start) != Start || g.State(end) != End {
		t.Errorf("endpoints reclassified: start %v, end %v", g.State(start), g.State(end))
	}
	for _, c := range []Cell{{0, 1}, {0, 2}} {
		if g.State(c) != Path {
			t.Errorf("cell %v: expected path, got %v", c, g.State(c))
		}
	}
	if g.State(Cell{1, 1}) != Free {
		t.Errorf("off-path cell reclassified as %v", g.State(Cell{1, 1}))
	}
}

func TestReconstructAdjacentEndpoints(t *testing.T) {
	start, end := Cell{1, 1}, Cell{1, 2}
	g := newTestGrid(t, 3, start, end)

	path, err := Reconstruct(g, map[Cell]Cell{end: start}, end, nil)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}
	if !reflect.DeepEqual(path, []Cell{start, end}) {
		t.Errorf("path = %v", path)
	}
}

func TestReconstructBrokenChain(t *testing.T) {
	start, end := Cell{0, 0}, Cell{2, 2}

	tests := []struct {
		name         string
		predecessors map[Cell]Cell
	}{
		{
			name:         "walk stops short of start",
			predecessors: map[Cell]Cell{{2, 2}: {2, 1}, {2, 1}: {1, 1}},
		},
		{
			name:         "cycle",
			predecessors: map[Cell]Cell{{2, 2}: {2, 1}, {2, 1}: {1, 1}, {1, 1}: {2, 1}},
		},
		{
			name:         "no predecessors",
			predecessors: map[Cell]Cell{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 3, start, end)
			calls := 0
			path, err := Reconstruct(g, tt.predecessors, end, func() { calls++ })
			if !errors.Is(err, ErrBrokenChain) {
				t.Fatalf("expected ErrBrokenChain, got %v", err)
			}
			if path != nil {
				t.Errorf("expected no path, got %v", path)
			}
			if calls != 0 {
				t.Errorf("expected no observer calls, got %d", calls)
			}
			g.Cells(func(c Cell, s State) {
				if s == Path {
					t.Errorf("cell %v marked as path on failure", c)
				}
			})
		})
	}
}

func TestReconstructWithoutStart(t *testing.T) {
	g, _ := NewGrid(3)
	_ = g.SetState(Cell{2, 2}, End)
	if _, err := Reconstruct(g, map[Cell]Cell{{2, 2}: {2, 1}}, Cell{2, 2}, nil); !errors.Is(err, ErrBrokenChain) {
		t.Errorf("expected ErrBrokenChain, got %v", err)
	}
}
