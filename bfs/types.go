// Package bfs walks a core.Adjacency level by level. Every link costs one,
// so the walk order doubles as an unweighted shortest-path tree.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cabinetroute/core"
)

var (
	ErrStartNotFound   = errors.New("bfs: start is not a graph node")
	ErrOptionViolation = errors.New("bfs: bad option")
	ErrNotReached      = errors.New("bfs: coordinate not reached")
)

// Option adjusts a walk. A bad value is remembered and reported by BFS as
// ErrOptionViolation rather than panicking.
type Option func(*BFSOptions)

// BFSOptions is the resolved configuration of one walk.
type BFSOptions struct {
	Ctx            context.Context                           // checked before each dequeue
	OnEnqueue      func(c core.Coordinate, depth int)        // first discovery
	OnVisit        func(c core.Coordinate, depth int) error  // dequeue; an error ends the walk
	MaxDepth       int                                       // 0 = unlimited
	FilterNeighbor func(curr, neighbor core.Coordinate) bool // false drops the link

	err error
}

// DefaultOptions walks everything reachable with no hooks.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:            context.Background(),
		OnEnqueue:      func(core.Coordinate, int) {},
		OnVisit:        func(core.Coordinate, int) error { return nil },
		MaxDepth:       0,
		FilterNeighbor: func(_, _ core.Coordinate) bool { return true },
	}
}

// WithContext lets ctx cancel the walk. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue observes each coordinate as it is first discovered.
func WithOnEnqueue(fn func(c core.Coordinate, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit observes each coordinate as it is dequeued. A non-nil error
// stops the walk and is returned wrapped.
func WithOnVisit(fn func(c core.Coordinate, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth visits nothing farther than d links from start. Zero lifts
// the limit; a negative d is an ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: negative max depth %d", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor drops the link curr->neighbor when fn returns false,
// e.g. to keep a walk on one floor.
func WithFilterNeighbor(fn func(curr, neighbor core.Coordinate) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// BFSResult is the shortest-path tree rooted at Start.
type BFSResult struct {
	Start  core.Coordinate
	Order  []core.Coordinate                   // dequeue order
	Depth  map[core.Coordinate]int             // links from Start, for every discovered point
	Parent map[core.Coordinate]core.Coordinate // Start has no entry
}

// Reached reports whether dest was discovered by the walk.
func (r *BFSResult) Reached(dest core.Coordinate) bool {
	_, ok := r.Depth[dest]

	return ok
}

// PathTo returns Start..dest along parent links, or ErrNotReached.
func (r *BFSResult) PathTo(dest core.Coordinate) ([]core.Coordinate, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotReached, dest)
	}
	path := make([]core.Coordinate, d+1)
	cur := dest
	for i := d; i > 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}
	path[0] = cur

	return path, nil
}
