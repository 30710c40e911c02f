package gridgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/cabinetroute/core"
)

var (
	orthogonal = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	allEight   = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// NewGridGraph copies values into a new GridGraph. values must have at least
// one row, and every row the same non-zero length.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(values[0])
	cells := make([][]int, len(values))
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrNonRectangular, y, len(row), w)
		}
		cells[y] = append([]int(nil), row...)
	}

	offsets := orthogonal
	if opts.Conn == Conn8 {
		offsets = allEight
	}

	return &GridGraph{
		Width:           w,
		Height:          len(cells),
		CellValues:      cells,
		Conn:            opts.Conn,
		LandThreshold:   opts.LandThreshold,
		neighborOffsets: offsets,
	}, nil
}

// From2D is NewGridGraph with the default threshold and the given connectivity.
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	opts := DefaultGridOptions()
	opts.Conn = conn

	return NewGridGraph(values, opts)
}

// Open builds a fully walkable w×h grid.
func Open(w, h int, conn Connectivity) (*GridGraph, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	values := make([][]int, h)
	for y := range values {
		values[y] = make([]int, w)
		for x := range values[y] {
			values[y][x] = 1
		}
	}

	return From2D(values, conn)
}

// InBounds reports whether (x,y) is a cell of the grid.
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// Walkable reports whether (x,y) is in bounds and at or above LandThreshold.
func (gg *GridGraph) Walkable(x, y int) bool {
	return gg.InBounds(x, y) && gg.CellValues[y][x] >= gg.LandThreshold
}

// NeighborOffsets returns the (dx, dy) moves for gg.Conn. Callers must not
// modify the result.
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// ToAdjacency converts the walkable cells into a routing graph on floor.
// Each walkable (x,y) becomes core.Coordinate{x, y, floor}; links follow
// gg.Conn and are stored in both directions. Isolated walkable cells are
// kept as nodes with no neighbors.
// Complexity: O(W×H×d).
func (gg *GridGraph) ToAdjacency(floor string) (core.Adjacency, error) {
	if floor == "" {
		return nil, ErrEmptyFloor
	}
	g := make(core.Adjacency, gg.Width*gg.Height)
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if !gg.Walkable(x, y) {
				continue
			}
			u := core.C(x, y, floor)
			nbs := make([]core.Coordinate, 0, len(gg.neighborOffsets))
			for _, d := range gg.neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if gg.Walkable(nx, ny) {
					nbs = append(nbs, core.C(nx, ny, floor))
				}
			}
			g[u] = nbs
		}
	}

	return g, nil
}

// Index is the row-major position of (x,y).
func (gg *GridGraph) Index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate inverts Index.
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}

// WalkableCount returns the number of walkable cells.
func (gg *GridGraph) WalkableCount() int {
	n := 0
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.Walkable(x, y) {
				n++
			}
		}
	}

	return n
}

// ParseGrid reads a text floor plan, one row per line. Blank lines are
// skipped. Cells: '.' walkable (1), '#' wall (0), '0'-'9' literal values.
func ParseGrid(r io.Reader) ([][]int, error) {
	var rows [][]int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if text == "" {
			continue
		}
		row := make([]int, 0, len(text))
		for col, ch := range text {
			switch {
			case ch == '.':
				row = append(row, 1)
			case ch == '#':
				row = append(row, 0)
			case ch >= '0' && ch <= '9':
				row = append(row, int(ch-'0'))
			default:
				return nil, fmt.Errorf("%w %q at line %d col %d", ErrBadCell, ch, line, col+1)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridgraph: read grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	return rows, nil
}
