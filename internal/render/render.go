// Package render formats routes, graph diagnostics and activity reports for
// the terminal.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/katalvlaran/cabinetroute/astar"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

const rule = 60

// Renderer handles output formatting. Pretty output adds headers, colour and
// named waypoints; plain output is one fact per line for scripts.
type Renderer struct {
	pretty bool
}

// New creates a renderer.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Route formats r. names labels points that are cabinet locations and may
// be nil.
func (r *Renderer) Route(route core.Route, names *core.NameIndex) string {
	var sb strings.Builder

	if !route.Found() {
		if r.pretty {
			fmt.Fprintf(&sb, "%s %s → %s\n", color.RedString("✗ no route"), route.Start.Name, route.End.Name)
		} else {
			fmt.Fprintf(&sb, "no route %s %s\n", route.Start.Name, route.End.Name)
		}
		return sb.String()
	}

	floors := route.Floors()
	if r.pretty {
		sb.WriteString(color.CyanString("%s → %s", route.Start.Name, route.End.Name))
		fmt.Fprintf(&sb, "  %d steps, floors %s\n", route.Steps(), strings.Join(floors, " → "))
		sb.WriteString(strings.Repeat("─", rule) + "\n")
	} else {
		fmt.Fprintf(&sb, "route %s %s steps=%d floors=%s\n",
			route.Start.Name, route.End.Name, route.Steps(), strings.Join(floors, ","))
	}

	for i, p := range route.Points {
		r.formatPoint(&sb, route, names, i, p)
	}

	return sb.String()
}

func (r *Renderer) formatPoint(sb *strings.Builder, route core.Route, names *core.NameIndex, i int, p core.Coordinate) {
	label, named := names.NameAt(p)
	stairs := i > 0 && route.Points[i-1].Floor != p.Floor

	if !r.pretty {
		fmt.Fprintf(sb, "%d %s", i, p.Text())
		if named {
			fmt.Fprintf(sb, " %s", label)
		}
		sb.WriteString("\n")
		return
	}

	marker := color.HiBlackString("·")
	switch {
	case i == 0:
		marker = color.GreenString("●")
	case i == len(route.Points)-1:
		marker = color.RedString("◉")
	case stairs:
		marker = color.YellowString("⇅")
	}
	fmt.Fprintf(sb, "%s %3d  %s", marker, i, p)
	if named {
		fmt.Fprintf(sb, "  %s", color.New(color.Bold).Sprint(label))
	}
	if stairs {
		fmt.Fprintf(sb, "  %s", color.YellowString("to %s", p.Floor))
	}
	sb.WriteString("\n")
}

// Stats formats the work counters of one A* search.
func (r *Renderer) Stats(s astar.Stats) string {
	if r.pretty {
		return fmt.Sprintf("%s expanded %d, pushed %d, stale %d\n",
			color.HiBlackString("search:"), s.Expanded, s.Pushed, s.StalePops)
	}

	return fmt.Sprintf("stats expanded=%d pushed=%d stale=%d\n", s.Expanded, s.Pushed, s.StalePops)
}

// Check is the outcome of a graph consistency check.
type Check struct {
	Summary    graphstore.Summary
	Dangling   []core.Coordinate
	Missing    []core.Cabinet
	Components [][]core.Coordinate
}

// OK reports whether the graph has no dangling neighbors and every cabinet
// is a node.
func (c Check) OK() bool {
	return len(c.Dangling) == 0 && len(c.Missing) == 0
}

// Check formats a graph check. Only the first few offenders of each kind are
// listed.
func (r *Renderer) Check(c Check) string {
	const show = 10
	var sb strings.Builder
	s := c.Summary

	if r.pretty {
		sb.WriteString(color.CyanString("Graph v%d\n", s.Version))
		sb.WriteString(strings.Repeat("─", rule) + "\n")
	}
	fmt.Fprintf(&sb, "points %d\nlinks %d\nnames %d\ncomponents %d\n", s.Points, s.Links, s.Names, len(c.Components))
	for _, f := range sortedKeys(s.Floors) {
		fmt.Fprintf(&sb, "floor %s %d\n", f, s.Floors[f])
	}

	bad := color.RedString
	if !r.pretty {
		bad = fmt.Sprintf
	}
	if n := len(c.Dangling); n > 0 {
		sb.WriteString(bad("dangling %d\n", n))
		for _, p := range c.Dangling[:min(show, n)] {
			fmt.Fprintf(&sb, "  %s\n", p.Text())
		}
	}
	if n := len(c.Missing); n > 0 {
		sb.WriteString(bad("missing %d\n", n))
		for _, cb := range c.Missing[:min(show, n)] {
			fmt.Fprintf(&sb, "  %s %s\n", cb.Name, cb.Location.Text())
		}
	}

	if r.pretty {
		if c.OK() {
			sb.WriteString(color.GreenString("✓ consistent\n"))
		} else {
			sb.WriteString(color.RedString("✗ inconsistent\n"))
		}
	}

	return sb.String()
}

// Daily formats the per-day good/bad activity report.
func (r *Renderer) Daily(days []metrics.DayStat) string {
	if len(days) == 0 {
		return "No activity recorded\n"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("%-12s %6s %6s  %s\n", "day", "good", "bad", "ratio"))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
	}
	for _, d := range days {
		if r.pretty {
			fmt.Fprintf(&sb, "%-12s %6s %6s  %s\n",
				d.Day, color.GreenString("%d", d.Good), color.RedString("%d", d.Bad), d.Ratio())
		} else {
			fmt.Fprintf(&sb, "%s good=%d bad=%d ratio=%s\n", d.Day, d.Good, d.Bad, d.Ratio())
		}
	}

	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
