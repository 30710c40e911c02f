package bfs

import (
	"errors"
	"sort"

	"github.com/katalvlaran/cabinetroute/core"
)

// errStop ends a walk early once the target is visited.
var errStop = errors.New("bfs: stop")

// Searcher finds shortest unit-cost paths with plain breadth-first search.
// It ignores the heuristic argument. The zero value is ready to use.
type Searcher struct{}

// FindPath returns the shortest path from start to end, inclusive of both,
// or an empty slice when end is unreachable. start and end must be nodes of
// g; otherwise a *core.ArgumentError is returned.
func (Searcher) FindPath(g core.Adjacency, start, end core.Coordinate, _ core.Heuristic) ([]core.Coordinate, error) {
	if !g.Has(start) {
		return nil, &core.ArgumentError{Role: "start", Point: start}
	}
	if !g.Has(end) {
		return nil, &core.ArgumentError{Role: "end", Point: end}
	}

	found := false
	res, err := BFS(g, start, WithOnVisit(func(c core.Coordinate, _ int) error {
		if c == end {
			found = true
			return errStop
		}

		return nil
	}))
	if err != nil && !found {
		return nil, err
	}
	if !found {
		return []core.Coordinate{}, nil
	}

	return res.PathTo(end)
}

// Components partitions the nodes of g into connected components, treating
// every link as bidirectional. Components are ordered by their smallest
// coordinate and each one is sorted (see core.Coordinate.Less). Dangling
// neighbors are not included.
func Components(g core.Adjacency) [][]core.Coordinate {
	undirected := make(core.Adjacency, g.Len())
	for u, nbs := range g {
		undirected.AddNode(u)
		for _, v := range nbs {
			if g.Has(v) {
				undirected.Connect(u, v)
			}
		}
	}

	seen := make(map[core.Coordinate]bool, g.Len())
	var out [][]core.Coordinate
	for _, root := range undirected.Coordinates() {
		if seen[root] {
			continue
		}
		res, _ := BFS(undirected, root)
		comp := make([]core.Coordinate, 0, len(res.Order))
		for _, c := range res.Order {
			seen[c] = true
			comp = append(comp, c)
		}
		sortCoordinates(comp)
		out = append(out, comp)
	}

	return out
}

func sortCoordinates(cs []core.Coordinate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}
