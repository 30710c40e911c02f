// Package bfs provides breadth-first search over a core.Adjacency,
// returning unit-cost distances, parent links and visit order.
//
// BFS explores coordinates in increasing distance from a start coordinate,
// with optional hooks, depth limiting and neighbor filtering. Because every
// link costs 1, BFS is also an exact shortest-path oracle: Searcher adapts it
// to the same FindPath shape as the A* searcher.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cabinetroute/core"
)

// queueItem pairs a coordinate with its BFS depth.
type queueItem struct {
	pos   core.Coordinate
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph core.Adjacency
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g from start, applying any number of
// functional Options. Returns ErrOptionViolation for bad options,
// ErrStartNotFound when start is not a node, the context error on
// cancellation, or any error returned by an OnVisit hook.
//
// Neighbors that are not themselves nodes of g are visited as leaves.
func BFS(g core.Adjacency, start core.Coordinate, opts ...Option) (*BFSResult, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: %s", ErrStartNotFound, start)
	}

	n := g.Len()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Start:  start,
			Order:  make([]core.Coordinate, 0, n),
			Depth:  make(map[core.Coordinate]int, n),
			Parent: make(map[core.Coordinate]core.Coordinate, n),
		},
	}
	w.enqueue(start, 0, nil)

	return w.res, w.loop()
}

// enqueue records depth and parent of c, calls OnEnqueue and appends it.
func (w *walker) enqueue(c core.Coordinate, d int, parent *core.Coordinate) {
	w.res.Depth[c] = d
	if parent != nil {
		w.res.Parent[c] = *parent
	}
	w.opts.OnEnqueue(c, d)
	w.queue = append(w.queue, queueItem{pos: c, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.pos)
		if err := w.opts.OnVisit(item.pos, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.pos, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each
// unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.graph[item.pos] {
		if !w.opts.FilterNeighbor(item.pos, nbr) {
			continue
		}
		if _, seen := w.res.Depth[nbr]; !seen {
			parent := item.pos
			w.enqueue(nbr, next, &parent)
		}
	}
}
