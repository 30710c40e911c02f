package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cabinetroute/bfs"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/gridgraph"
	"github.com/katalvlaran/cabinetroute/internal/render"
)

func graphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect and build graph files",
	}
	cmd.AddCommand(graphCheckCmd(a), graphGridCmd(a))

	return cmd
}

type checkOutput struct {
	graphstore.Summary
	Components int      `json:"components"`
	DanglingAt []string `json:"danglingAt"`
	MissingAt  []string `json:"missingAt"`
	OK         bool     `json:"ok"`
}

func graphCheckCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the graph and report dangling links and misplaced cabinets",
		Long: `Load the graph and names files and report point, link and floor counts,
connected components, neighbors that are not graph nodes and cabinets whose
location is not a graph node.

With --strict the exit status is 3 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.cache().Snapshot()
			if err != nil {
				return err
			}
			check := render.Check{
				Summary:    snap.Summary(),
				Dangling:   snap.Graph.Dangling(),
				Missing:    snap.Names.Missing(snap.Graph),
				Components: bfs.Components(snap.Graph),
			}

			if a.jsonOut {
				out := checkOutput{
					Summary:    check.Summary,
					Components: len(check.Components),
					DanglingAt: make([]string, 0, len(check.Dangling)),
					MissingAt:  make([]string, 0, len(check.Missing)),
					OK:         check.OK(),
				}
				for _, p := range check.Dangling {
					out.DanglingAt = append(out.DanglingAt, p.Text())
				}
				for _, cb := range check.Missing {
					out.MissingAt = append(out.MissingAt, cb.Name)
				}
				if err := a.printJSON(out); err != nil {
					return err
				}
			} else {
				fmt.Fprint(a.stdout, render.New(a.pretty).Check(check))
			}

			if strict && !check.OK() {
				return fmt.Errorf("%w: %d dangling, %d missing", errInconsistent, len(check.Dangling), len(check.Missing))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the graph is inconsistent")

	return cmd
}

func graphGridCmd(a *app) *cobra.Command {
	var (
		floor     string
		diagonal  bool
		threshold int
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "grid FILE",
		Short: "Convert a text floor plan into graph.json",
		Long: `Convert a text floor plan into graph.json.

Each line is a row: '.' is walkable, '#' is a wall, digits are cell values
compared against --threshold. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			rows, err := gridgraph.ParseGrid(in)
			if err != nil {
				return err
			}
			opts := gridgraph.DefaultGridOptions()
			opts.LandThreshold = threshold
			if diagonal {
				opts.Conn = gridgraph.Conn8
			}
			gg, err := gridgraph.NewGridGraph(rows, opts)
			if err != nil {
				return err
			}
			g, err := gg.ToAdjacency(floor)
			if err != nil {
				return err
			}

			out := a.stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if err := graphstore.EncodeGraph(out, g); err != nil {
				return err
			}
			a.log.Info("grid converted",
				slog.String("floor", floor),
				slog.Int("width", gg.Width),
				slog.Int("height", gg.Height),
				slog.Int("points", g.Len()),
				slog.String("conn", opts.Conn.String()),
			)

			return nil
		},
	}
	cmd.Flags().StringVarP(&floor, "floor", "f", "", "Floor tag for every point (required)")
	cmd.Flags().BoolVar(&diagonal, "diagonal", false, "Link diagonal neighbors")
	cmd.Flags().IntVar(&threshold, "threshold", 1, "Minimum cell value that is walkable")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("floor")

	return cmd
}
