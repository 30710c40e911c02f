// Package astar provides A* shortest-path search between two coordinates of
// a core.Adjacency, the engine behind cabinet-to-cabinet routes.
//
// Overview:
//
//   - Every link costs 1, so the shortest path is the one with fewest steps.
//   - The frontier is a min-heap ordered by F = G + H; equal F values pop in
//     push order.
//   - The heuristic is pluggable (core.Manhattan by default). Any admissible
//     heuristic yields an optimal path; core.Zero degrades to uniform-cost
//     search, core.Chebyshev suits 8-connected floors.
//
// When to use:
//
//   - Single-pair queries on building graphs where the goal's position is
//     known and a geometric estimate steers the search toward it.
//   - For all-targets exploration use package bfs instead.
//
// Key features:
//
//   - Explicit per-node "discovered" flag; the start node with G=0 is never
//     mistaken for an unseen one.
//   - Lazy decrease-key: improved nodes are pushed again and stale entries
//     are skipped on pop, keeping every frontier operation O(log N).
//   - WithMaxExpansions bounds work on very large graphs (ErrSearchLimit).
//   - WithOnExpand exposes each expansion for tracing and tests.
//   - Stats (Expanded, Pushed, StalePops) report the work done per query.
//
// Performance and complexity:
//
//   - Time:  O(E log E) in the worst case; usually far less with a good
//     heuristic.
//   - Space: O(V + E) for node records and heap entries.
//
// Error handling:
//
//   - *core.ArgumentError (wraps core.ErrArgument): start or end is not a
//     key of the graph. Start is checked first.
//   - ErrSearchLimit: the expansion cap was hit before reaching the goal.
//   - An unreachable goal is not an error: the path is empty.
//
// Concurrency:
//
//   - AStar carries only options; each call allocates its own runner, so a
//     single AStar may serve concurrent requests over a read-only graph.
//
// Example:
//
//	path, err := astar.FindPath(g, from, to, core.Manhattan)
//	if err != nil {
//		// *core.ArgumentError or ErrSearchLimit
//	}
//	if len(path) == 0 {
//		// no route
//	}
package astar
