// Package astar finds shortest 4-directional paths on a square grid with A*.
//
// It exposes two main entry points:
//
//   - Run: search to completion and get a Result.
//   - Search: advance the search one expansion at a time with Step to drive UIs or debugging tools.
//
// The search runs on the caller's goroutine. Progress is reported by
// classifying grid cells (Frontier, Visited, Path) and calling an Observer
// between steps; cancellation is read from a context.Context once per step.
// Equal-cost candidates are expanded in insertion order, so repeated searches
// over the same grid produce the same path and the same cell classifications.
package astar
