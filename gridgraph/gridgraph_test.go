package gridgraph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/gridgraph"
)

const floor = "matmeh_5"

//----------------------------------------------------------------------------//
// NewGridGraph and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGridGraph_Errors verifies that NewGridGraph rejects empty or ragged inputs.
func TestNewGridGraph_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		err  error
	}{
		{"EmptyRows", [][]int{}, gridgraph.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, gridgraph.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 2}, {3}}, gridgraph.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGridGraph(tc.grid, gridgraph.DefaultGridOptions())
			if !errors.Is(err, tc.err) {
				t.Errorf("NewGridGraph(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
		})
	}
}

// TestInBounds checks InBounds and Walkable on a 3×2 grid.
func TestInBounds(t *testing.T) {
	gg, err := gridgraph.From2D([][]int{
		{0, 1, 0},
		{1, 0, 1},
	}, gridgraph.Conn4)
	require.NoError(t, err)

	for _, xy := range [][2]int{{0, 0}, {2, 1}, {1, 1}} {
		require.True(t, gg.InBounds(xy[0], xy[1]), "InBounds(%d,%d)", xy[0], xy[1])
	}
	for _, xy := range [][2]int{{-1, 0}, {3, 0}, {1, 2}, {2, -1}} {
		require.False(t, gg.InBounds(xy[0], xy[1]), "InBounds(%d,%d)", xy[0], xy[1])
	}
	require.True(t, gg.Walkable(1, 0))
	require.False(t, gg.Walkable(0, 0))
	require.False(t, gg.Walkable(5, 5))
	require.Equal(t, 3, gg.WalkableCount())
}

// TestNewGridGraph_DeepCopy ensures later edits to the input do not leak in.
func TestNewGridGraph_DeepCopy(t *testing.T) {
	in := [][]int{{1, 1}}
	gg, err := gridgraph.From2D(in, gridgraph.Conn4)
	require.NoError(t, err)
	in[0][0] = 0
	require.True(t, gg.Walkable(0, 0))
}

//----------------------------------------------------------------------------//
// ToAdjacency Tests
//----------------------------------------------------------------------------//

// TestToAdjacency_Conn4 verifies that only orthogonal links exist under Conn4
// and that walls never become nodes.
func TestToAdjacency_Conn4(t *testing.T) {
	gg, err := gridgraph.From2D([][]int{
		{1, 0},
		{1, 1},
	}, gridgraph.Conn4)
	require.NoError(t, err)

	g, err := gg.ToAdjacency(floor)
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())
	require.False(t, g.Has(core.C(1, 0, floor)), "wall must not be a node")

	require.ElementsMatch(t, []core.Coordinate{core.C(0, 1, floor)}, g[core.C(0, 0, floor)])
	require.ElementsMatch(t, []core.Coordinate{core.C(0, 0, floor), core.C(1, 1, floor)}, g[core.C(0, 1, floor)])
	require.Equal(t, 4, g.EdgeCount())
	require.Empty(t, g.Dangling())
}

// TestToAdjacency_Conn8 verifies diagonal links on a 2×2 open grid.
func TestToAdjacency_Conn8(t *testing.T) {
	gg, err := gridgraph.Open(2, 2, gridgraph.Conn8)
	require.NoError(t, err)
	require.Len(t, gg.NeighborOffsets(), 8)

	g, err := gg.ToAdjacency(floor)
	require.NoError(t, err)
	require.Equal(t, 4, g.Len())
	for _, nbs := range g {
		require.Len(t, nbs, 3)
	}
	require.Contains(t, g[core.C(0, 0, floor)], core.C(1, 1, floor))
}

// TestToAdjacency_IsolatedCell keeps a walkable cell with no walkable neighbors.
func TestToAdjacency_IsolatedCell(t *testing.T) {
	gg, err := gridgraph.From2D([][]int{{1, 0, 1}}, gridgraph.Conn4)
	require.NoError(t, err)

	g, err := gg.ToAdjacency(floor)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	require.Empty(t, g[core.C(0, 0, floor)])
	require.Empty(t, g[core.C(2, 0, floor)])
}

func TestToAdjacency_EmptyFloor(t *testing.T) {
	gg, err := gridgraph.Open(1, 1, gridgraph.Conn4)
	require.NoError(t, err)
	_, err = gg.ToAdjacency("")
	require.ErrorIs(t, err, gridgraph.ErrEmptyFloor)
}

// TestLandThreshold treats values below the threshold as walls.
func TestLandThreshold(t *testing.T) {
	opts := gridgraph.DefaultGridOptions()
	opts.LandThreshold = 2
	gg, err := gridgraph.NewGridGraph([][]int{{1, 2, 3}}, opts)
	require.NoError(t, err)

	g, err := gg.ToAdjacency(floor)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	require.False(t, g.Has(core.C(0, 0, floor)))
}

func TestIndexCoordinateRoundTrip(t *testing.T) {
	gg, err := gridgraph.Open(4, 3, gridgraph.Conn4)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			gx, gy := gg.Coordinate(gg.Index(x, y))
			require.Equal(t, [2]int{x, y}, [2]int{gx, gy})
		}
	}
}

//----------------------------------------------------------------------------//
// ParseGrid Tests
//----------------------------------------------------------------------------//

func TestParseGrid(t *testing.T) {
	rows, err := gridgraph.ParseGrid(strings.NewReader("..#\n\n#.2\r\n"))
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 1, 0}, {0, 1, 2}}, rows)

	_, err = gridgraph.ParseGrid(strings.NewReader(".x."))
	require.ErrorIs(t, err, gridgraph.ErrBadCell)

	_, err = gridgraph.ParseGrid(strings.NewReader("\n\n"))
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
}
