package astar_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cabinetroute/astar"
	"github.com/katalvlaran/cabinetroute/bfs"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/gridgraph"
)

const fl = "matmeh_5"

func c(x, y int) core.Coordinate { return core.C(x, y, fl) }

// chain builds (0,0)-(1,0)-...-(n-1,0).
func chain(n int) core.Adjacency {
	g := core.Adjacency{}
	for i := 0; i+1 < n; i++ {
		g.Connect(c(i, 0), c(i+1, 0))
	}

	return g
}

// openGrid converts an open w×h floor into a graph.
func openGrid(t testing.TB, w, h int) core.Adjacency {
	t.Helper()
	gg, err := gridgraph.Open(w, h, gridgraph.Conn4)
	require.NoError(t, err)
	g, err := gg.ToAdjacency(fl)
	require.NoError(t, err)

	return g
}

// requireWalk asserts consecutive points of path are linked in g.
func requireWalk(t *testing.T, g core.Adjacency, path []core.Coordinate) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		require.Contains(t, g[path[i-1]], path[i], "step %d: %s -> %s", i, path[i-1], path[i])
	}
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSearch_EmptyGraph(t *testing.T) {
	for _, g := range []core.Adjacency{nil, {}} {
		_, err := astar.Search(g, c(0, 0), c(0, 0))
		var argErr *core.ArgumentError
		require.ErrorAs(t, err, &argErr)
		require.Equal(t, "start", argErr.Role)
		require.ErrorIs(t, err, core.ErrArgument)
	}
}

func TestSearch_MissingEndpoints(t *testing.T) {
	g := chain(3)
	var argErr *core.ArgumentError

	// start is validated first, even when both are missing.
	_, err := astar.Search(g, c(9, 9), c(8, 8))
	require.ErrorAs(t, err, &argErr)
	require.Equal(t, "start", argErr.Role)
	require.Equal(t, c(9, 9), argErr.Point)

	_, err = astar.FindPath(g, c(0, 0), c(8, 8), nil)
	require.ErrorAs(t, err, &argErr)
	require.Equal(t, "end", argErr.Role)
	require.Equal(t, c(8, 8), argErr.Point)
}

func TestWithMaxExpansions_NegativePanics(t *testing.T) {
	require.PanicsWithValue(t, astar.ErrBadMaxExpansions.Error(), func() {
		_, _ = astar.Search(chain(2), c(0, 0), c(1, 0), astar.WithMaxExpansions(-1))
	})
}

// ------------------------------------------------------------------------
// 2. Basic paths
// ------------------------------------------------------------------------

func TestFindPath_Chain(t *testing.T) {
	g := chain(4)
	path, err := astar.FindPath(g, c(0, 0), c(3, 0), nil)
	require.NoError(t, err)
	require.Equal(t, []core.Coordinate{c(0, 0), c(1, 0), c(2, 0), c(3, 0)}, path)

	// reverse direction walks the same corridor backwards
	path, err = astar.FindPath(g, c(3, 0), c(0, 0), core.Euclidean)
	require.NoError(t, err)
	require.Equal(t, []core.Coordinate{c(3, 0), c(2, 0), c(1, 0), c(0, 0)}, path)
}

func TestFindPath_SameStartAndEnd(t *testing.T) {
	res, err := astar.Search(chain(3), c(1, 0), c(1, 0))
	require.NoError(t, err)
	require.Equal(t, []core.Coordinate{c(1, 0)}, res.Path)
	require.Equal(t, 0, res.Cost)
	require.Equal(t, 0, res.Stats.Expanded)
}

func TestFindPath_Grid10x10(t *testing.T) {
	g := openGrid(t, 10, 10)
	for _, h := range []core.Heuristic{core.Manhattan, core.Euclidean, core.Chebyshev, core.Zero} {
		path, err := astar.FindPath(g, c(0, 0), c(9, 9), h)
		require.NoError(t, err)
		require.Len(t, path, 19)
		require.Equal(t, c(0, 0), path[0])
		require.Equal(t, c(9, 9), path[18])
		requireWalk(t, g, path)
	}
}

func TestFindPath_Idempotent(t *testing.T) {
	g := openGrid(t, 10, 10)
	s := astar.New()
	first, err := s.FindPath(g, c(0, 0), c(9, 9), nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.FindPath(g, c(0, 0), c(9, 9), nil)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFindPath_Disconnected(t *testing.T) {
	g := chain(3)
	g.AddNode(c(7, 7))

	res, err := astar.Search(g, c(0, 0), c(7, 7))
	require.NoError(t, err)
	require.NotNil(t, res.Path)
	require.Empty(t, res.Path)
	require.Equal(t, -1, res.Cost)
	require.Equal(t, 3, res.Stats.Expanded)
}

// TestFindPath_RevisitStart guards against treating G==0 as "unvisited":
// a self-loop and a cycle both lead back to the start node.
func TestFindPath_RevisitStart(t *testing.T) {
	g := core.Adjacency{}
	g.Connect(c(0, 0), c(0, 0))
	g.Connect(c(0, 0), c(1, 0))
	g.Connect(c(1, 0), c(1, 1))
	g.Connect(c(1, 1), c(0, 1))
	g.Connect(c(0, 1), c(0, 0))
	g.Connect(c(1, 1), c(2, 1))

	path, err := astar.FindPath(g, c(0, 0), c(2, 1), nil)
	require.NoError(t, err)
	require.Len(t, path, 4)
	require.Equal(t, c(0, 0), path[0])
	for _, p := range path[1:] {
		require.NotEqual(t, c(0, 0), p)
	}
}

// TestFindPath_DanglingNeighbor treats a neighbor missing from the keys as a leaf.
func TestFindPath_DanglingNeighbor(t *testing.T) {
	g := chain(3)
	g[c(1, 0)] = append(g[c(1, 0)], c(1, 5))

	path, err := astar.FindPath(g, c(0, 0), c(2, 0), nil)
	require.NoError(t, err)
	require.Len(t, path, 3)

	// a dangling target is not a graph node
	_, err = astar.FindPath(g, c(0, 0), c(1, 5), nil)
	require.True(t, core.IsArgument(err))
}

func TestFindPath_AcrossFloors(t *testing.T) {
	g := core.Adjacency{}
	g.Connect(core.C(0, 0, "f5"), core.C(1, 0, "f5"))
	g.Connect(core.C(1, 0, "f5"), core.C(1, 0, "f6"))
	g.Connect(core.C(1, 0, "f6"), core.C(2, 0, "f6"))
	// same x,y on another floor is a different node
	g.AddNode(core.C(2, 0, "f5"))

	path, err := astar.FindPath(g, core.C(0, 0, "f5"), core.C(2, 0, "f6"), nil)
	require.NoError(t, err)
	require.Equal(t, []core.Coordinate{
		core.C(0, 0, "f5"), core.C(1, 0, "f5"), core.C(1, 0, "f6"), core.C(2, 0, "f6"),
	}, path)

	path, err = astar.FindPath(g, core.C(0, 0, "f5"), core.C(2, 0, "f5"), nil)
	require.NoError(t, err)
	require.Empty(t, path)
}

// ------------------------------------------------------------------------
// 3. Options and statistics
// ------------------------------------------------------------------------

func TestSearch_MaxExpansions(t *testing.T) {
	g := openGrid(t, 10, 10)

	_, err := astar.Search(g, c(0, 0), c(9, 9), astar.WithMaxExpansions(5))
	require.ErrorIs(t, err, astar.ErrSearchLimit)

	res, err := astar.Search(g, c(0, 0), c(9, 9), astar.WithMaxExpansions(0))
	require.NoError(t, err)
	require.Equal(t, 18, res.Cost)
}

// TestSearch_MaxExpansionsBoundary checks that a cap equal to the number of
// expansions a search needs still finds the path, and one less does not.
func TestSearch_MaxExpansionsBoundary(t *testing.T) {
	res, err := astar.Search(chain(2), c(0, 0), c(1, 0), astar.WithMaxExpansions(1))
	require.NoError(t, err)
	require.Equal(t, []core.Coordinate{c(0, 0), c(1, 0)}, res.Path)
	require.Equal(t, 1, res.Stats.Expanded)

	g := openGrid(t, 10, 10)
	free, err := astar.Search(g, c(0, 0), c(9, 9))
	require.NoError(t, err)
	need := free.Stats.Expanded
	require.Greater(t, need, 1)

	capped, err := astar.Search(g, c(0, 0), c(9, 9), astar.WithMaxExpansions(need))
	require.NoError(t, err)
	require.Equal(t, free.Path, capped.Path)
	require.Equal(t, need, capped.Stats.Expanded)

	var expanded int
	_, err = astar.Search(g, c(0, 0), c(9, 9),
		astar.WithMaxExpansions(need-1),
		astar.WithOnExpand(func(core.Coordinate, int) { expanded++ }),
	)
	require.ErrorIs(t, err, astar.ErrSearchLimit)
	require.Equal(t, need-1, expanded)
}

func TestSearch_OnExpandAndStats(t *testing.T) {
	g := chain(5)
	var seen []core.Coordinate
	var depths []int
	res, err := astar.Search(g, c(0, 0), c(4, 0), astar.WithOnExpand(func(p core.Coordinate, d int) {
		seen = append(seen, p)
		depths = append(depths, d)
	}))
	require.NoError(t, err)

	// goal is popped, not expanded
	require.Equal(t, []core.Coordinate{c(0, 0), c(1, 0), c(2, 0), c(3, 0)}, seen)
	require.Equal(t, []int{0, 1, 2, 3}, depths)
	require.Equal(t, 4, res.Stats.Expanded)
	require.Equal(t, 5, res.Stats.Pushed)
	require.Equal(t, 4, res.Cost)
}

// TestSearch_HeuristicPrunes checks that Manhattan explores less than Zero
// on an open floor while returning an equally short path.
func TestSearch_HeuristicPrunes(t *testing.T) {
	g := openGrid(t, 20, 20)

	guided, err := astar.Search(g, c(0, 0), c(19, 0))
	require.NoError(t, err)
	blind, err := astar.Search(g, c(0, 0), c(19, 0), astar.WithHeuristic(core.Zero))
	require.NoError(t, err)

	require.Equal(t, blind.Cost, guided.Cost)
	require.Less(t, guided.Stats.Expanded, blind.Stats.Expanded)
}

// ------------------------------------------------------------------------
// 4. Cross-check against BFS on random floors
// ------------------------------------------------------------------------

func TestFindPath_MatchesBFS(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	var oracle bfs.Searcher
	for round := 0; round < 30; round++ {
		const w, h = 15, 12
		values := make([][]int, h)
		for y := range values {
			values[y] = make([]int, w)
			for x := range values[y] {
				if rnd.Intn(100) >= 28 {
					values[y][x] = 1
				}
			}
		}
		values[0][0], values[h-1][w-1] = 1, 1
		gg, err := gridgraph.From2D(values, gridgraph.Conn4)
		require.NoError(t, err)
		g, err := gg.ToAdjacency(fl)
		require.NoError(t, err)

		got, err := astar.FindPath(g, c(0, 0), c(w-1, h-1), nil)
		require.NoError(t, err)
		want, err := oracle.FindPath(g, c(0, 0), c(w-1, h-1), nil)
		require.NoError(t, err)

		require.Equal(t, len(want), len(got), "round %d", round)
		if len(got) > 0 {
			requireWalk(t, g, got)
		}
	}
}

func TestSearch_Conn8Chebyshev(t *testing.T) {
	gg, err := gridgraph.Open(6, 6, gridgraph.Conn8)
	require.NoError(t, err)
	g, err := gg.ToAdjacency(fl)
	require.NoError(t, err)

	res, err := astar.Search(g, c(0, 0), c(5, 5), astar.WithHeuristic(core.Chebyshev))
	require.NoError(t, err)
	require.Equal(t, 5, res.Cost)
}

func TestSearch_ErrorsAreNotSearchLimit(t *testing.T) {
	_, err := astar.Search(chain(2), c(5, 5), c(0, 0))
	require.False(t, errors.Is(err, astar.ErrSearchLimit))
}
