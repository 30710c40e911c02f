package main

import (
	"fmt"

	"github.com/katalvlaran/cabinetroute/astar"
	"github.com/katalvlaran/cabinetroute/bfs"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/internal/config"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
	"github.com/katalvlaran/cabinetroute/pathfinder"
)

// cache returns a lazily loading snapshot cache over the configured data dir.
func (a *app) cache() *graphstore.Cache {
	d := a.cfg.Data
	loader := graphstore.Dir(d.Dir,
		graphstore.WithGraphGlob(d.GraphGlob),
		graphstore.WithNamesFile(d.NamesFile),
		graphstore.WithLoaderLogger(a.log),
	)

	return graphstore.NewCache(loader, graphstore.WithLogger(a.log))
}

// searcher returns the configured search strategy.
func (a *app) searcher() (pathfinder.Searcher, error) {
	s := a.cfg.Search
	switch s.Strategy {
	case config.StrategyAStar:
		return astar.New(astar.WithMaxExpansions(s.MaxExpansions)), nil
	case config.StrategyBFS:
		return bfs.Searcher{}, nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", s.Strategy)
	}
}

// service wires src and searcher into a route service using the configured
// heuristic.
func (a *app) service(src pathfinder.Source, searcher pathfinder.Searcher) (*pathfinder.Service, error) {
	h, err := core.HeuristicByName(a.cfg.Search.Heuristic)
	if err != nil {
		return nil, err
	}

	return pathfinder.New(src, searcher,
		pathfinder.WithLogger(a.log),
		pathfinder.WithHeuristic(h),
	), nil
}

// openMetrics opens the activity store at path, or the configured one when
// path is empty.
func (a *app) openMetrics(path string) (*metrics.Store, error) {
	m := a.cfg.Metrics
	if path == "" {
		path = m.DBPath
	}

	return metrics.Open(path, metrics.WithGoodRange(m.GoodMinMs, m.GoodMaxMs))
}
