// SPDX-License-Identifier: MIT
//
// File: adjacency_list.go
// Role: Coordinate adjacency map and its read-only queries.
// Policy:
//   - Populated once by a loader or builder, then read-only.
//   - A key that is absent is "no such point", never an empty neighbor list.

package core

import (
	"fmt"
	"sort"
)

// Adjacency maps every graph node to the coordinates directly walkable from it.
// Neighbor order is irrelevant to routing but is preserved for determinism.
type Adjacency map[Coordinate][]Coordinate

// Has reports whether c is a node (key) of the graph.
// Complexity: O(1).
func (a Adjacency) Has(c Coordinate) bool {
	_, ok := a[c]

	return ok
}

// Neighbors returns the neighbors of c, or an error wrapping ErrPointNotFound
// when c is not a key. The returned slice is shared; callers must not mutate it.
// Complexity: O(1).
func (a Adjacency) Neighbors(c Coordinate) ([]Coordinate, error) {
	nbs, ok := a[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPointNotFound, c)
	}

	return nbs, nil
}

// Len returns the number of nodes.
func (a Adjacency) Len() int { return len(a) }

// EdgeCount returns the number of directed links (sum of neighbor list lengths).
// A bidirectional corridor counts twice.
// Complexity: O(V).
func (a Adjacency) EdgeCount() int {
	n := 0
	for _, nbs := range a {
		n += len(nbs)
	}

	return n
}

// Coordinates returns all nodes sorted by Floor, Y, X.
// Complexity: O(V log V).
func (a Adjacency) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, len(a))
	for c := range a {
		out = append(out, c)
	}
	sortCoordinates(out)

	return out
}

// Dangling returns the distinct neighbor values that are not themselves keys,
// sorted. Loaders report these as data warnings; search treats them as leaves.
// Complexity: O(V + E).
func (a Adjacency) Dangling() []Coordinate {
	seen := make(map[Coordinate]struct{})
	var out []Coordinate
	for _, nbs := range a {
		for _, nb := range nbs {
			if _, ok := a[nb]; ok {
				continue
			}
			if _, dup := seen[nb]; dup {
				continue
			}
			seen[nb] = struct{}{}
			out = append(out, nb)
		}
	}
	sortCoordinates(out)

	return out
}

// Floors returns the sorted set of floor tags and the node count per floor.
func (a Adjacency) Floors() ([]string, map[string]int) {
	counts := make(map[string]int)
	for c := range a {
		counts[c.Floor]++
	}
	floors := make([]string, 0, len(counts))
	for f := range counts {
		floors = append(floors, f)
	}
	sort.Strings(floors)

	return floors, counts
}

// Connect adds a bidirectional link between p and q, creating either node
// if needed. Existing links are not duplicated.
// Only for building a graph; never call it on a graph that is being read.
func (a Adjacency) Connect(p, q Coordinate) {
	a.link(p, q)
	a.link(q, p)
}

// AddNode ensures c is a key, with no neighbors if it is new.
func (a Adjacency) AddNode(c Coordinate) {
	if _, ok := a[c]; !ok {
		a[c] = []Coordinate{}
	}
}

func (a Adjacency) link(from, to Coordinate) {
	for _, nb := range a[from] {
		if nb == to {
			return
		}
	}
	a[from] = append(a[from], to)
}

func sortCoordinates(cs []Coordinate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}
