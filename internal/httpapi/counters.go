package httpapi

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Counters tracks request outcomes since start.
type Counters struct {
	Routes       atomic.Int64
	NoRoute      atomic.Int64
	RouteErrors  atomic.Int64
	BadRequests  atomic.Int64
	Activities   atomic.Int64
	Reloads      atomic.Int64
	ReloadErrors atomic.Int64
}

// handler renders the counters in Prometheus text format.
func (c *Counters) handler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")

		fmt.Fprintf(w, "# HELP cabinetroute_uptime_seconds Time since the server started\n")
		fmt.Fprintf(w, "# TYPE cabinetroute_uptime_seconds gauge\n")
		fmt.Fprintf(w, "cabinetroute_uptime_seconds %.2f\n\n", time.Since(started).Seconds())

		counter := func(name, help string, v int64) {
			fmt.Fprintf(w, "# HELP cabinetroute_%s %s\n", name, help)
			fmt.Fprintf(w, "# TYPE cabinetroute_%s counter\n", name)
			fmt.Fprintf(w, "cabinetroute_%s %d\n\n", name, v)
		}
		counter("routes_total", "Route queries that passed input checks", c.Routes.Load())
		counter("routes_not_found_total", "Route queries answered with an empty path", c.NoRoute.Load())
		counter("route_errors_total", "Route queries that failed on the server side", c.RouteErrors.Load())
		counter("bad_requests_total", "Route requests rejected as invalid", c.BadRequests.Load())
		counter("activities_total", "Activity reports accepted", c.Activities.Load())
		counter("graph_reloads_total", "Successful graph reloads", c.Reloads.Load())
		counter("graph_reload_errors_total", "Failed graph reloads", c.ReloadErrors.Load())
	}
}
