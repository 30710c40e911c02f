package bfs_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cabinetroute/bfs"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/gridgraph"
)

// ExampleBFS_gridTraversal demonstrates BFS layering on an open 3×2 floor.
func ExampleBFS_gridTraversal() {
	gg, _ := gridgraph.Open(3, 2, gridgraph.Conn4)
	g, _ := gg.ToAdjacency("f")

	res, err := bfs.BFS(g, core.C(0, 0, "f"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range res.Order {
		fmt.Printf("%s@%d ", p.Text(), res.Depth[p])
	}
	fmt.Println()
	// Output:
	// 0 0 f@0 1 0 f@1 0 1 f@1 2 0 f@2 1 1 f@2 2 1 f@3
}

// ExampleComponents lists the connected pieces of a floor split by a wall.
func ExampleComponents() {
	grid, _ := gridgraph.ParseGrid(strings.NewReader("..#.\n..#.\n"))
	gg, _ := gridgraph.From2D(grid, gridgraph.Conn4)
	g, _ := gg.ToAdjacency("f")

	for i, comp := range bfs.Components(g) {
		fmt.Println(i, len(comp), comp[0])
	}
	// Output:
	// 0 4 (0, 0, f)
	// 1 2 (3, 0, f)
}
