// Package bfs provides breadth-first search over a core.Adjacency,
// returning unit-cost distances, parent links and visit order.
//
// What
//
//   - Explore coordinates in non-decreasing link count from a start node.
//   - BFSResult carries Order (visit sequence), Depth (links from start)
//     and Parent (predecessor in the BFS tree).
//   - Hooks: OnEnqueue (before a node is queued) and OnVisit (may abort
//     the walk with an error).
//   - WithFilterNeighbor prunes individual links; WithMaxDepth bounds depth.
//   - Searcher exposes the walk through the same FindPath shape the A*
//     searcher uses, so the route service can run either.
//   - Components splits a graph into connected pieces, used by the graph
//     diagnostics.
//
// Determinism
//
//	Neighbors are enqueued in slice order, so the visit sequence is fully
//	reproducible for a given Adjacency.
//
// Complexity (V = nodes, E = links)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the queue, Depth and Parent maps.
//
// Usage
//
//	res, err := bfs.BFS(g, start, bfs.WithMaxDepth(3))
//	if err != nil {
//		// ErrStartNotFound, ErrOptionViolation, ctx error, or hook error
//	}
//	path, err := res.PathTo(dest)
//
// Errors
//
//   - ErrStartNotFound    if start is not a node of g.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNotReached       from PathTo for an undiscovered coordinate.
//   - Wrapped errors returned by OnVisit.
package bfs
