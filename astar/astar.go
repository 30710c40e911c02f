// Package astar implements A* shortest-path search over a core.Adjacency
// with unit edge costs.
//
// Complexity:
//
//   - Time:  O(E log E) over the explored region only; nodes the heuristic
//     rules out are never touched.
//   - Space: O(V + E) for the per-node records and the frontier heap.
//
// Notes on implementation choices:
//
//   - Every edge costs 1; no weight data is consulted.
//   - Each node record carries an explicit "discovered" flag, so a G of zero
//     is never mistaken for "not yet seen".
//   - Lazy decrease-key: an improved node is pushed again and the outdated
//     heap entry is skipped when popped (its G no longer matches the record,
//     or the node is already closed).
//   - Ties on F are broken by push order, which makes the result fully
//     deterministic for a given graph, including its neighbor order.
//   - A neighbor that is not itself a key of the graph is a leaf: it can be
//     entered but has nothing to expand.
package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/cabinetroute/core"
)

// AStar is the A* path searcher. The zero value is ready to use and runs
// with DefaultOptions. AStar holds no per-search state and is safe for
// concurrent use.
type AStar struct {
	opts []Option
}

// New returns an AStar that applies opts to every search.
func New(opts ...Option) *AStar {
	return &AStar{opts: opts}
}

// FindPath returns the shortest path from start to end, inclusive of both.
// A non-nil h overrides the configured heuristic for this call.
// It returns an empty slice, not an error, when end is unreachable.
func (a *AStar) FindPath(g core.Adjacency, start, end core.Coordinate, h core.Heuristic) ([]core.Coordinate, error) {
	opts := make([]Option, 0, len(a.opts)+1)
	opts = append(opts, a.opts...)
	opts = append(opts, WithHeuristic(h))
	res, err := Search(g, start, end, opts...)
	if err != nil {
		return nil, err
	}

	return res.Path, nil
}

// FindPath runs A* with default options and heuristic h (nil = Manhattan).
func FindPath(g core.Adjacency, start, end core.Coordinate, h core.Heuristic) ([]core.Coordinate, error) {
	return (&AStar{}).FindPath(g, start, end, h)
}

// Search computes the shortest unit-cost path from start to end in g.
//
// Preconditions and validation (in order):
//  1. start must be a key of g (*core.ArgumentError, Role "start").
//  2. end must be a key of g (*core.ArgumentError, Role "end").
//
// An empty or nil graph therefore always fails. When end is unreachable the
// result has an empty Path and Cost -1, with a nil error.
func Search(g core.Adjacency, start, end core.Coordinate, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate endpoints
	if !g.Has(start) {
		return nil, &core.ArgumentError{Role: "start", Point: start}
	}
	if !g.Has(end) {
		return nil, &core.ArgumentError{Role: "end", Point: end}
	}

	r := &runner{
		g:       g,
		options: cfg,
		start:   start,
		goal:    end,
		nodes:   make(map[core.Coordinate]*record),
		closed:  make(map[core.Coordinate]bool),
		open:    make(frontier, 0, 16),
	}
	r.init()

	goal, err := r.process()
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return &Result{Path: []core.Coordinate{}, Cost: -1, Stats: r.stats}, nil
	}
	path := r.reconstruct(goal)

	return &Result{Path: path, Cost: len(path) - 1, Stats: r.stats}, nil
}

// record is the best-known state of one coordinate during a search.
type record struct {
	pos        core.Coordinate
	parent     *record // nil for the start node
	g          int     // edges walked from start
	h          float64 // heuristic to goal
	discovered bool
}

// runner holds the mutable state for a single A* execution.
type runner struct {
	g       core.Adjacency              // input graph; read-only
	options Options                     // configuration
	start   core.Coordinate             // source
	goal    core.Coordinate             // target
	nodes   map[core.Coordinate]*record // best-known record per coordinate
	closed  map[core.Coordinate]bool    // fully expanded coordinates
	open    frontier                    // min-heap on F, then push order
	seq     uint64                      // push counter for tie-breaking
	stats   Stats
}

// init records the start node with G=0 and pushes it onto the frontier.
func (r *runner) init() {
	heap.Init(&r.open)
	rec := &record{
		pos:        r.start,
		g:          0,
		h:          r.options.Heuristic(r.start, r.goal),
		discovered: true,
	}
	r.nodes[r.start] = rec
	r.push(rec)
}

// process pops the lowest-F entry until the goal is popped or the frontier
// is empty. It returns the goal record, or nil if unreachable.
func (r *runner) process() (*record, error) {
	for r.open.Len() > 0 {
		item := heap.Pop(&r.open).(*entry)
		rec := r.nodes[item.pos]

		// Skip entries superseded by a cheaper push or already expanded.
		if r.closed[item.pos] || item.g != rec.g {
			r.stats.StalePops++
			continue
		}

		if item.pos == r.goal {
			return rec, nil
		}

		// The cap counts completed expansions; reaching the goal needs none.
		if r.options.MaxExpansions > 0 && r.stats.Expanded >= r.options.MaxExpansions {
			return nil, fmt.Errorf("%w: %d expansions from %s toward %s",
				ErrSearchLimit, r.stats.Expanded, r.start, r.goal)
		}

		r.closed[item.pos] = true
		r.stats.Expanded++
		r.options.OnExpand(item.pos, rec.g)
		r.relax(rec)
	}

	return nil, nil
}

// relax examines every neighbor of cur and records a better path to it when
// the neighbor is new or the path through cur is strictly shorter.
func (r *runner) relax(cur *record) {
	// A missing key is a dangling neighbor: nothing to expand.
	neighbors := r.g[cur.pos]

	tentative := cur.g + 1
	for _, nb := range neighbors {
		if r.closed[nb] {
			continue
		}

		rec, ok := r.nodes[nb]
		if !ok {
			rec = &record{pos: nb}
			r.nodes[nb] = rec
		}

		// Strictly shorter only; equal-cost alternatives keep the earlier parent.
		if rec.discovered && tentative >= rec.g {
			continue
		}

		rec.parent = cur
		rec.g = tentative
		rec.h = r.options.Heuristic(nb, r.goal)
		rec.discovered = true
		r.push(rec)
	}
}

// push inserts a frontier entry snapshotting rec's current G and F.
func (r *runner) push(rec *record) {
	r.seq++
	r.stats.Pushed++
	heap.Push(&r.open, &entry{
		pos: rec.pos,
		g:   rec.g,
		f:   float64(rec.g) + rec.h,
		seq: r.seq,
	})
}

// reconstruct walks parent links from goal back to start and reverses them.
func (r *runner) reconstruct(goal *record) []core.Coordinate {
	n := goal.g + 1
	path := make([]core.Coordinate, n)
	for cur := goal; cur != nil; cur = cur.parent {
		n--
		path[n] = cur.pos
	}

	return path
}

// entry is one frontier slot. g and f are snapshots taken at push time.
type entry struct {
	pos core.Coordinate
	g   int
	f   float64
	seq uint64
}

// frontier is a min-heap of *entry ordered by f, then by seq (push order).
type frontier []*entry

// Len returns the number of items in the heap.
func (pq frontier) Len() int { return len(pq) }

// Less orders by F ascending; equal F falls back to earlier push.
func (pq frontier) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *frontier) Push(x interface{}) { *pq = append(*pq, x.(*entry)) }

// Pop removes and returns the last element; heap.Pop has already swapped
// the minimum there.
func (pq *frontier) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
