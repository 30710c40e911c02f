// Package main provides the cabinetroute CLI: the HTTP server, one-off route
// queries and graph and metrics maintenance commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/cabinetroute/internal/config"
	"github.com/katalvlaran/cabinetroute/internal/logging"
)

var version = "0.1.0"

// Exit codes beyond the generic 1.
const (
	exitNoRoute      = 2
	exitInconsistent = 3
)

var (
	errNoRoute      = errors.New("no route")
	errInconsistent = errors.New("graph is inconsistent")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoRoute):
		return exitNoRoute
	case errors.Is(err, errInconsistent):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInconsistent
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// app carries what PersistentPreRunE resolves for every subcommand.
type app struct {
	cfgPath string
	dataDir string
	jsonOut bool
	pretty  bool

	cfg    config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "cabinetroute",
		Short: "Shortest walking routes between campus cabinets",
		Long: `cabinetroute finds the shortest walking route between two named rooms
over a per-floor coordinate graph.

Configuration comes from built-in defaults, then --config (YAML), then
CABINETROUTE_* environment variables, then command-line flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&a.dataDir, "data", "d", "", "Directory with graph and names files (overrides data.dir)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output as JSON")

	root.AddCommand(serveCmd(a), routeCmd(a), graphCmd(a), metricsCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return err
	}
	a.pretty = !a.jsonOut && isTerminal(a.stdout)

	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// printJSON writes v indented to the command's stdout.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
