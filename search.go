package astar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrMissingEndpoints is returned when a search starts on a grid without
// both a Start and an End cell.
var ErrMissingEndpoints = errors.New("start and end must both be set")

// Infinity is the g-score of a cell the search has not reached.
const Infinity = math.MaxInt

// Status is the outcome of a completed or aborted search. None of the
// statuses is an error.
type Status uint8

const (
	Found Status = iota + 1
	NotFound
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Phase is the state of a Search.
type Phase uint8

const (
	PhaseInitialized Phase = iota
	PhaseRunning
	PhaseFound
	PhaseExhausted
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialized:
		return "initialized"
	case PhaseRunning:
		return "running"
	case PhaseFound:
		return "found"
	case PhaseExhausted:
		return "exhausted"
	case PhaseCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Terminal reports whether no further steps will be taken.
func (p Phase) Terminal() bool {
	return p == PhaseFound || p == PhaseExhausted || p == PhaseCancelled
}

// Observer is called synchronously after each expansion and after each
// reconstructed path cell. It may read the grid but must not edit it.
type Observer func()

func (o Observer) notify() {
	if o != nil {
		o()
	}
}

// Result contains the outcome of a search.
type Result struct {
	Status        Status
	Path          []Cell
	TotalCost     int
	ExpandedNodes int
}

// Options defines parameters for the search.
type Options struct {
	Heuristic Heuristic
	Logger    *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the default Manhattan heuristic. A heuristic that
// overestimates gives up optimality.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger sets the logger for search lifecycle records. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// Search is a single A* invocation over a Grid, advanced one expansion at a
// time by Step. Its score maps, frontier and predecessor map live only as
// long as the Search.
//
// A pending cell reached again at a lower cost has its frontier key lowered
// in place, so the expansion order (and, between equal-cost paths, the path
// returned) can differ from a frontier that only pushes unseen cells.
type Search struct {
	grid       *Grid
	start, end Cell
	adjacency  Adjacency
	heuristic  Heuristic
	logger     *slog.Logger
	observer   Observer

	frontier *OpenSet[Cell]
	gScore   map[Cell]int
	fScore   map[Cell]int
	cameFrom map[Cell]Cell

	phase    Phase
	expanded int
	path     []Cell
}

// NewSearch prepares a search from the grid's Start to its End cell. The
// grid's adjacency is frozen here; edits made while the search runs are not
// seen by it and are not supported.
func NewSearch(grid *Grid, observer Observer, options ...Option) (*Search, error) {
	searchOptions := Options{
		Heuristic: Manhattan,
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&searchOptions)
	}

	start, hasStart := grid.Start()
	end, hasEnd := grid.End()
	if !hasStart || !hasEnd {
		return nil, fmt.Errorf("%w: start set %t, end set %t", ErrMissingEndpoints, hasStart, hasEnd)
	}

	s := &Search{
		grid:      grid,
		start:     start,
		end:       end,
		adjacency: grid.SnapshotAdjacency(),
		heuristic: searchOptions.Heuristic,
		logger:    searchOptions.Logger,
		observer:  observer,
		frontier:  NewOpenSet[Cell](),
		gScore:    map[Cell]int{start: 0},
		fScore:    make(map[Cell]int),
		cameFrom:  make(map[Cell]Cell),
	}
	s.fScore[start] = s.heuristic(start, end)
	s.frontier.Push(start, s.fScore[start])

	s.logger.Debug("search initialized", "start", start, "end", end, "rows", grid.Rows())
	return s, nil
}

// Phase returns the current state of the search.
func (s *Search) Phase() Phase { return s.phase }

// ExpandedNodes returns how many cells have been popped from the frontier.
func (s *Search) ExpandedNodes() int { return s.expanded }

// Path returns the reconstructed path once the search is PhaseFound.
func (s *Search) Path() []Cell { return s.path }

// GScore returns the best known cost from Start to c. Unreached cells, and
// every cell once the search is cancelled, report Infinity and false.
func (s *Search) GScore(c Cell) (int, bool) {
	g, ok := s.gScore[c]
	if !ok {
		return Infinity, false
	}
	return g, true
}

// Step performs one iteration of the search loop and returns the resulting
// phase. Steps on a terminal search are no-ops. ctx is the cancellation
// token; it is checked once per step and its cancellation is reported as
// PhaseCancelled, not as an error.
func (s *Search) Step(ctx context.Context) (Phase, error) {
	if s.phase.Terminal() {
		return s.phase, nil
	}
	s.phase = PhaseRunning

	if ctx.Err() != nil {
		s.finish(PhaseCancelled)
		s.discard()
		return s.phase, nil
	}

	current, ok := s.frontier.PopMin()
	if !ok {
		s.finish(PhaseExhausted)
		return s.phase, nil
	}
	s.expanded++

	if current == s.end {
		s.finish(PhaseFound)
		path, err := Reconstruct(s.grid, s.cameFrom, s.end, s.observer)
		if err != nil {
			return s.phase, err
		}
		s.path = path
		s.logger.Debug("path reconstructed", "length", len(path))
		return s.phase, nil
	}

	for _, neighbor := range s.adjacency.Neighbors(current) {
		if err := s.apply(s.propose(current, neighbor)); err != nil {
			return s.phase, err
		}
	}

	s.observer.notify()

	if current != s.start {
		if err := s.grid.SetState(current, Visited); err != nil {
			return s.phase, err
		}
	}
	return s.phase, nil
}

func (s *Search) finish(phase Phase) {
	s.phase = phase
	s.logger.Debug("search finished", "phase", phase, "expanded", s.expanded)
}

// discard drops all per-invocation state.
func (s *Search) discard() {
	s.frontier = nil
	s.gScore = nil
	s.fScore = nil
	s.cameFrom = nil
}

// Run searches the grid from its Start to its End cell, calling observer
// after every expansion and every reconstructed cell. ctx cancellation ends
// the search with status Cancelled and a nil error; no reconstruction is
// performed in that case.
func Run(ctx context.Context, grid *Grid, observer Observer, options ...Option) (Result, error) {
	s, err := NewSearch(grid, observer, options...)
	if err != nil {
		return Result{}, err
	}

	for {
		phase, err := s.Step(ctx)
		if err != nil {
			return Result{}, err
		}

		switch phase {
		case PhaseFound:
			return Result{
				Status:        Found,
				Path:          s.path,
				TotalCost:     len(s.path) - 1,
				ExpandedNodes: s.expanded,
			}, nil
		case PhaseExhausted:
			return Result{Status: NotFound, ExpandedNodes: s.expanded}, nil
		case PhaseCancelled:
			return Result{Status: Cancelled, ExpandedNodes: s.expanded}, nil
		}
	}
}
