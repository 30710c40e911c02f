package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cabinetroute/astar"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/internal/config"
	"github.com/katalvlaran/cabinetroute/internal/httpapi"
	"github.com/katalvlaran/cabinetroute/internal/render"
	"github.com/katalvlaran/cabinetroute/pathfinder"
)

// statsSearcher runs A* through Search and keeps the counters of the last
// run.
type statsSearcher struct {
	opts  []astar.Option
	stats astar.Stats
	ran   bool
}

func (s *statsSearcher) FindPath(g core.Adjacency, start, end core.Coordinate, h core.Heuristic) ([]core.Coordinate, error) {
	res, err := astar.Search(g, start, end, append(s.opts, astar.WithHeuristic(h))...)
	if err != nil {
		return nil, err
	}
	s.stats, s.ran = res.Stats, true

	return res.Path, nil
}

type routeOutput struct {
	httpapi.RouteResponse
	Stats *astar.Stats `json:"stats,omitempty"`
}

func routeCmd(a *app) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the shortest route between two cabinets",
		Long: `Print the shortest route between two cabinets.

Exit status is 2 when both cabinets exist but no route connects them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := a.cache()

			var searcher pathfinder.Searcher
			var rec *statsSearcher
			if stats {
				if a.cfg.Search.Strategy != config.StrategyAStar {
					return fmt.Errorf("--stats needs search.strategy %s", config.StrategyAStar)
				}
				rec = &statsSearcher{opts: []astar.Option{astar.WithMaxExpansions(a.cfg.Search.MaxExpansions)}}
				searcher = rec
			} else {
				s, err := a.searcher()
				if err != nil {
					return err
				}
				searcher = s
			}

			svc, err := a.service(cache, searcher)
			if err != nil {
				return err
			}
			route, err := svc.FindPath(args[0], args[1])
			if err != nil {
				return err
			}

			if a.jsonOut {
				out := routeOutput{RouteResponse: httpapi.NewRouteResponse(httpapi.RouteRequest{From: args[0], To: args[1]}, route)}
				if rec != nil && rec.ran {
					out.Stats = &rec.stats
				}
				if err := a.printJSON(out); err != nil {
					return err
				}
			} else {
				names, err := cache.Names()
				if err != nil {
					return err
				}
				r := render.New(a.pretty)
				fmt.Fprint(a.stdout, r.Route(route, names))
				if rec != nil && rec.ran {
					fmt.Fprint(a.stdout, r.Stats(rec.stats))
				}
			}

			if !route.Found() {
				return errNoRoute
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Report A* search counters")

	return cmd
}
