package core

import (
	"fmt"
	"strings"
)

// Heuristic estimates the remaining cost from a to the goal b.
// It must never overestimate the true number of unit-cost edges.
type Heuristic func(a, b Coordinate) float64

// Manhattan is the default heuristic: |dx| + |dy|.
func Manhattan(a, b Coordinate) float64 { return float64(a.Manhattan(b)) }

// Euclidean is the straight-line distance heuristic.
func Euclidean(a, b Coordinate) float64 { return a.Euclidean(b) }

// Chebyshev is max(|dx|, |dy|); admissible for 8-connected grids where a
// diagonal step costs the same as a straight one.
func Chebyshev(a, b Coordinate) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return float64(dx)
	}

	return float64(dy)
}

// Zero turns A* into a uniform-cost search.
func Zero(_, _ Coordinate) float64 { return 0 }

// HeuristicByName resolves a heuristic by its lower-case name (case-insensitive).
// The empty name resolves to Manhattan.
func HeuristicByName(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "chebyshev":
		return Chebyshev, nil
	case "zero", "none":
		return Zero, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}
