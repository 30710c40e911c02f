// Package pathfinder turns a pair of cabinet names into a Route.
//
// Service.FindPath resolves both names through the name index, checks that
// their locations are nodes of the graph, answers identical endpoints
// directly and otherwise asks a Searcher for the coordinate path.
//
// Errors:
//
//   - *core.NotFoundError, Kind start or end: a name is not in the index.
//   - *core.InconsistentDataError: a named location is not a graph node.
//   - Source failures (*core.NotFoundError Kind source, *core.FormatError)
//     are returned as the Source reported them.
//   - An unreachable destination is not an error; the Route has no points.
package pathfinder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/internal/logging"
)

// Searcher computes a unit-cost path between two graph nodes. It returns an
// empty slice when end is unreachable. astar.AStar and bfs.Searcher both
// satisfy it.
type Searcher interface {
	FindPath(g core.Adjacency, start, end core.Coordinate, h core.Heuristic) ([]core.Coordinate, error)
}

// Source yields the current graph and name index as one consistent pair.
// *graphstore.Cache and *graphstore.Static satisfy it.
type Source interface {
	Snapshot() (*graphstore.Snapshot, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Routes are logged at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = logging.OrDiscard(log)
	}
}

// WithHeuristic sets the heuristic handed to the Searcher. nil means
// core.Manhattan.
func WithHeuristic(h core.Heuristic) Option {
	return func(s *Service) {
		if h != nil {
			s.heuristic = h
		}
	}
}

// Service answers route queries. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	src       Source
	searcher  Searcher
	heuristic core.Heuristic
	log       *slog.Logger
}

// New returns a Service reading data from src and searching with searcher.
func New(src Source, searcher Searcher, opts ...Option) *Service {
	s := &Service{
		src:       src,
		searcher:  searcher,
		heuristic: core.Manhattan,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FindPath returns the shortest route between two named cabinets.
func (s *Service) FindPath(startName, endName string) (core.Route, error) {
	snap, err := s.src.Snapshot()
	if err != nil {
		return core.Route{}, err
	}

	// 1) Resolve names, start first
	start, ok := snap.Names.Lookup(startName)
	if !ok {
		return core.Route{}, &core.NotFoundError{Kind: core.KindStart, Name: startName}
	}
	end, ok := snap.Names.Lookup(endName)
	if !ok {
		return core.Route{}, &core.NotFoundError{Kind: core.KindEnd, Name: endName}
	}

	// 2) Both locations must be nodes
	for _, cb := range []core.Cabinet{start, end} {
		if !snap.Graph.Has(cb.Location) {
			return core.Route{}, &core.InconsistentDataError{Cabinet: cb}
		}
	}

	route := core.Route{Start: start, End: end}

	// 3) Identical endpoints need no search
	if start.Name == end.Name || start.Location == end.Location {
		route.Points = []core.Coordinate{start.Location}
		return route, nil
	}

	// 4) Search
	points, err := s.searcher.FindPath(snap.Graph, start.Location, end.Location, s.heuristic)
	if err != nil {
		return core.Route{}, fmt.Errorf("pathfinder: %s -> %s: %w", start.Name, end.Name, err)
	}
	if points == nil {
		points = []core.Coordinate{}
	}
	route.Points = points

	s.logRoute(snap.Names, route)

	return route, nil
}

// Names returns the cabinet names of the current snapshot, sorted.
func (s *Service) Names() ([]string, error) {
	snap, err := s.src.Snapshot()
	if err != nil {
		return nil, err
	}

	return snap.Names.Names(), nil
}

func (s *Service) logRoute(names *core.NameIndex, r core.Route) {
	if !s.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if !r.Found() {
		s.log.Debug("no route", slog.String("from", r.Start.Name), slog.String("to", r.End.Name))
		return
	}

	// Only named waypoints are listed; corridor points are counted.
	var via []string
	for i := 1; i < len(r.Points)-1; i++ {
		if n, ok := names.NameAt(r.Points[i]); ok {
			via = append(via, n)
		}
	}
	s.log.Debug("route found",
		slog.String("from", r.Start.Name),
		slog.String("to", r.End.Name),
		slog.Int("steps", r.Steps()),
		slog.Any("floors", r.Floors()),
		slog.String("via", strings.Join(via, " > ")),
	)
}
