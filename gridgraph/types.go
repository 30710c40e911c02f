package gridgraph

import "errors"

// Sentinel errors for grid construction and parsing.
var (
	ErrEmptyGrid      = errors.New("gridgraph: grid has no cells")
	ErrNonRectangular = errors.New("gridgraph: rows differ in length")
	ErrBadCell        = errors.New("gridgraph: unknown cell character")
	ErrEmptyFloor     = errors.New("gridgraph: empty floor tag")
)

// Connectivity is the set of moves allowed from a cell.
type Connectivity int

const (
	// Conn4 links orthogonal neighbors only.
	Conn4 Connectivity = iota
	// Conn8 also links diagonal neighbors. Pair it with core.Chebyshev.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}

	return "conn4"
}

// GridOptions controls which cells are walkable and how they link.
type GridOptions struct {
	LandThreshold int          // cells with value >= LandThreshold are walkable
	Conn          Connectivity // move set
}

// DefaultGridOptions treats any positive cell as walkable under Conn4.
func DefaultGridOptions() GridOptions {
	return GridOptions{LandThreshold: 1, Conn: Conn4}
}

// GridGraph is an immutable floor plan of Width×Height integer cells,
// stored row-major as CellValues[y][x].
type GridGraph struct {
	Width, Height   int
	CellValues      [][]int
	Conn            Connectivity
	LandThreshold   int
	neighborOffsets [][2]int
}
