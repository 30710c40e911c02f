// Package astar defines options, statistics and sentinel errors for the
// A* searcher over a core.Adjacency.
//
// A* finds the shortest unit-cost path from a start coordinate to a goal
// coordinate. It expands nodes in increasing order of F = G + H, where G is
// the number of edges walked from the start and H is a heuristic estimate of
// the edges remaining.
//
// Options:
//
//	– Heuristic:     remaining-cost estimate; nil means core.Manhattan.
//	– MaxExpansions: optional cap on expanded nodes (0 = unlimited).
//	– OnExpand:      hook called for every expanded node with its G.
//
// Errors (sentinel):
//
//	– core.ErrArgument        if start or end is not a key of the graph
//	                          (returned as *core.ArgumentError).
//	– ErrSearchLimit          if MaxExpansions is reached before the goal.
//	– ErrBadMaxExpansions     if WithMaxExpansions gets a negative value (panics).
package astar

import (
	"errors"

	"github.com/katalvlaran/cabinetroute/core"
)

// Sentinel errors returned by the A* implementation.
var (
	// ErrSearchLimit indicates the search stopped after MaxExpansions
	// expansions without reaching the goal.
	ErrSearchLimit = errors.New("astar: expansion limit reached")

	// ErrBadMaxExpansions indicates a negative MaxExpansions.
	ErrBadMaxExpansions = errors.New("astar: MaxExpansions must be non-negative")
)

// Options configures a single A* run.
type Options struct {
	Heuristic     core.Heuristic                   // remaining-cost estimate
	MaxExpansions int                              // 0 = unlimited
	OnExpand      func(pos core.Coordinate, g int) // diagnostics hook
}

// Option represents a functional option for configuring A*.
type Option func(*Options)

// WithHeuristic sets the heuristic. A nil h keeps the default (Manhattan).
func WithHeuristic(h core.Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithMaxExpansions caps the number of expanded nodes. Zero means no cap.
// Negative values panic with ErrBadMaxExpansions.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadMaxExpansions.Error())
		}
		o.MaxExpansions = n
	}
}

// WithOnExpand registers a hook called each time a node is expanded.
func WithOnExpand(fn func(pos core.Coordinate, g int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// DefaultOptions returns Manhattan heuristic, no expansion cap, no-op hook.
func DefaultOptions() Options {
	return Options{
		Heuristic:     core.Manhattan,
		MaxExpansions: 0,
		OnExpand:      func(core.Coordinate, int) {},
	}
}

// Stats counts the work done by one search.
type Stats struct {
	Expanded  int `json:"expanded"`  // nodes moved to the closed set
	Pushed    int `json:"pushed"`    // frontier insertions, duplicates included
	StalePops int `json:"stalePops"` // popped entries skipped as outdated
}

// Result is the outcome of Search.
//
// Path is empty (non-nil) when the goal is unreachable; Cost is then -1.
type Result struct {
	Path  []core.Coordinate
	Cost  int
	Stats Stats
}
