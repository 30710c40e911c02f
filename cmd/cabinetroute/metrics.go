package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cabinetroute/internal/render"
)

func metricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Map activity reports",
	}

	var dbPath string
	report := &cobra.Command{
		Use:   "report",
		Short: "Per-day good and bad map sessions",
		Long: `Per-day good and bad map sessions.

A session is good when its active time lies within metrics.good_min_ms and
metrics.good_max_ms. The ratio column is good divided by bad.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openMetrics(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			days, err := store.Daily(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				type row struct {
					Day   string `json:"day"`
					Good  int    `json:"good"`
					Bad   int    `json:"bad"`
					Ratio string `json:"ratio"`
				}
				rows := make([]row, len(days))
				for i, d := range days {
					rows[i] = row{Day: d.Day, Good: d.Good, Bad: d.Bad, Ratio: d.Ratio()}
				}
				return a.printJSON(rows)
			}
			fmt.Fprint(a.stdout, render.New(a.pretty).Daily(days))

			return nil
		},
	}
	report.Flags().StringVar(&dbPath, "db", "", "Activity database (overrides metrics.db_path)")
	cmd.AddCommand(report)

	return cmd
}
