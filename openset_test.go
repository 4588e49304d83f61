package astar

import "testing"

func TestOpenSetOrdersByPriorityThenInsertion(t *testing.T) {
	f := NewOpenSet[string]()
	f.Push("c", 5)
	f.Push("a", 3)
	f.Push("d", 5)
	f.Push("b", 3)
	f.Push("e", 1)

	want := []string{"e", "a", "b", "c", "d"}
	for i, w := range want {
		got, ok := f.PopMin()
		if !ok {
			t.Fatalf("pop %d: frontier unexpectedly empty", i)
		}
		if got != w {
			t.Errorf("pop %d: expected %q, got %q", i, w, got)
		}
	}
	if !f.IsEmpty() {
		t.Errorf("expected empty frontier, len %d", f.Len())
	}
}

func TestOpenSetPopEmpty(t *testing.T) {
	f := NewOpenSet[Cell]()
	if _, ok := f.PopMin(); ok {
		t.Error("PopMin on empty frontier should report false")
	}
}

func TestOpenSetMembership(t *testing.T) {
	f := NewOpenSet[Cell]()
	a, b := Cell{0, 0}, Cell{1, 1}
	f.Push(a, 2)
	f.Push(b, 4)

	if !f.Contains(a) || !f.Contains(b) {
		t.Fatal("pushed cells should be pending")
	}
	if f.Contains(Cell{2, 2}) {
		t.Error("unknown cell should not be pending")
	}

	if got, _ := f.PopMin(); got != a {
		t.Fatalf("expected %v, got %v", a, got)
	}
	if f.Contains(a) {
		t.Error("popped cell should no longer be pending")
	}
	if !f.Contains(b) {
		t.Error("remaining cell should still be pending")
	}
}

func TestOpenSetLower(t *testing.T) {
	f := NewOpenSet[string]()
	f.Push("x", 4)
	f.Push("y", 6)
	f.Push("z", 4)

	if f.Lower("y", 7) {
		t.Error("raising a priority should be refused")
	}
	if f.Lower("missing", 1) {
		t.Error("lowering a non-pending node should be refused")
	}
	if !f.Lower("y", 4) {
		t.Fatal("expected y to be lowered")
	}

	// y keeps its original sequence number, so it sorts between x and z.
	want := []string{"x", "y", "z"}
	for i, w := range want {
		if got, _ := f.PopMin(); got != w {
			t.Errorf("pop %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestOpenSetHoldsFrontierCells(t *testing.T) {
	g := newTestGrid(t, 3, Cell{0, 0}, Cell{2, 2})
	open := NewOpenSet[Cell]()
	for _, c := range g.NeighborsOf(Cell{1, 1}) {
		open.Push(c, Manhattan(c, Cell{2, 2}))
		if err := g.SetState(c, Frontier); err != nil {
			t.Fatalf("SetState(%v, Frontier) failed: %v", c, err)
		}
	}
	if open.Len() != 4 {
		t.Fatalf("expected 4 pending cells, got %d", open.Len())
	}
	for !open.IsEmpty() {
		c, _ := open.PopMin()
		if got := g.State(c); got != Frontier {
			t.Errorf("cell %v: expected %v, got %v", c, Frontier, got)
		}
	}
	if Frontier.String() != "frontier" {
		t.Errorf("expected state name frontier, got %q", Frontier.String())
	}
}
