package graphstore

import (
	"time"

	"github.com/katalvlaran/cabinetroute/core"
)

// Loader reads the two halves of the routing data.
type Loader interface {
	LoadGraph() (core.Adjacency, error)
	LoadNames() (*core.NameIndex, error)
}

// Snapshot is one consistent, read-only generation of graph and names.
type Snapshot struct {
	Graph    core.Adjacency
	Names    *core.NameIndex
	Version  uint64 // 1 for the first load, +1 per successful reload
	LoadedAt time.Time
}

// Summary holds the counts reported by logs, the reload endpoint and the
// graph check command.
type Summary struct {
	Version  uint64         `json:"version"`
	Points   int            `json:"points"`
	Links    int            `json:"links"`
	Names    int            `json:"names"`
	Dangling int            `json:"dangling"`
	Missing  int            `json:"missing"` // names whose location is not a node
	Floors   map[string]int `json:"floors"`
}

// Summary computes counts over s. It walks the whole graph.
func (s *Snapshot) Summary() Summary {
	_, perFloor := s.Graph.Floors()

	return Summary{
		Version:  s.Version,
		Points:   s.Graph.Len(),
		Links:    s.Graph.EdgeCount(),
		Names:    s.Names.Len(),
		Dangling: len(s.Graph.Dangling()),
		Missing:  len(s.Names.Missing(s.Graph)),
		Floors:   perFloor,
	}
}

// Static serves one fixed snapshot built in memory.
type Static struct {
	snap *Snapshot
}

// NewStatic wraps g and names as version 1.
func NewStatic(g core.Adjacency, names *core.NameIndex) *Static {
	return &Static{snap: &Snapshot{Graph: g, Names: names, Version: 1, LoadedAt: time.Now()}}
}

// Snapshot returns the fixed snapshot.
func (s *Static) Snapshot() (*Snapshot, error) { return s.snap, nil }
