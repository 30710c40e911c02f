// Package gridgraph turns a rectangular 2D walkability grid of one floor into
// a core.Adjacency routing graph.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid with a tunable LandThreshold.
//   - Cells with value ≥ LandThreshold are walkable; every walkable cell
//     becomes a graph node (x, y, floor).
//   - Walkable neighbors are linked in both directions using Conn4 (N/E/S/W)
//     or Conn8 (plus diagonals), each link costing one unit.
//   - ParseGrid reads a text plan ('.'/'#' or digit cells) for the CLI.
//
// Why:
//
//   - Floor plans rasterised from drawings are naturally grids.
//   - Test fixtures: an open 10×10 grid is the canonical routing benchmark.
//
// Heuristics:
//
//	Conn4 graphs work with the Manhattan heuristic. Conn8 graphs make a
//	diagonal step cost 1, so Manhattan may overestimate; use
//	core.Chebyshev (or core.Zero) there.
//
// Complexity:
//
//   - NewGridGraph: O(W×H) time and memory (deep copy).
//   - ToAdjacency:  O(W×H×d) time, O(W×H×d) memory, d = 4 or 8.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadCell: ParseGrid met a character it does not understand.
package gridgraph
