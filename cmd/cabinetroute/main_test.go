package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cabinetroute/internal/config"
	"github.com/katalvlaran/cabinetroute/internal/logging"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

// writeData lays out a two-floor graph: 501 - hall - stairs up to 601, and
// an unreachable 599.
func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	graph := `{
  "0 0 matmeh_5": ["1 0 matmeh_5"],
  "1 0 matmeh_5": ["0 0 matmeh_5", "2 0 matmeh_5"],
  "2 0 matmeh_5": ["1 0 matmeh_5", "2 0 matmeh_6"],
  "2 0 matmeh_6": ["2 0 matmeh_5"],
  "9 9 matmeh_5": []
}`
	names := `{"501": "0 0 matmeh_5", "601": "2 0 matmeh_6", "599": "9 9 matmeh_5"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.json"), []byte(graph), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.json"), []byte(names), 0o644))

	return dir
}

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)

	return code, out.String(), errb.String()
}

func TestRoute_JSON(t *testing.T) {
	dir := writeData(t)
	code, out, stderr := execute("--data", dir, "--json", "route", "501", "601")
	require.Equal(t, 0, code, stderr)

	var resp routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, resp.Found)
	require.Equal(t, 3, resp.Steps)
	require.Equal(t, []string{"matmeh_5", "matmeh_6"}, resp.Floors)
	require.Nil(t, resp.Stats)
}

func TestRoute_PlainWithStats(t *testing.T) {
	dir := writeData(t)
	code, out, stderr := execute("--data", dir, "route", "--stats", "501", "601")
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(out, "route 501 601 steps=3 floors=matmeh_5,matmeh_6\n"), out)
	require.Contains(t, out, "3 2 0 matmeh_6 601\n")
	require.Contains(t, out, "stats expanded=3 ")
}

func TestRoute_Failures(t *testing.T) {
	dir := writeData(t)

	code, out, _ := execute("--data", dir, "route", "501", "599")
	require.Equal(t, exitNoRoute, code)
	require.Equal(t, "no route 501 599\n", out)

	code, _, stderr := execute("--data", dir, "route", "501", "404")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, `end location unknown: "404"`)

	code, _, stderr = execute("--data", t.TempDir(), "route", "501", "601")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "graph source not found")

	code, _, _ = execute("--data", dir, "route", "501")
	require.Equal(t, 1, code)
}

func TestRoute_StatsNeedsAStar(t *testing.T) {
	t.Setenv(config.EnvPrefix+"STRATEGY", config.StrategyBFS)
	dir := writeData(t)

	code, _, stderr := execute("--data", dir, "route", "--stats", "501", "601")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "--stats needs")

	code, _, stderr = execute("--data", dir, "route", "501", "601")
	require.Equal(t, 0, code, stderr)
}

func TestGraphCheck(t *testing.T) {
	dir := writeData(t)
	code, out, stderr := execute("--data", dir, "--json", "graph", "check")
	require.Equal(t, 0, code, stderr)

	var res checkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.True(t, res.OK)
	require.Equal(t, 5, res.Points)
	require.Equal(t, 2, res.Components)
	require.Equal(t, map[string]int{"matmeh_5": 4, "matmeh_6": 1}, res.Floors)

	names := `{"501": "0 0 matmeh_5", "ghost": "7 7 matmeh_5"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.json"), []byte(names), 0o644))

	code, out, _ = execute("--data", dir, "graph", "check")
	require.Equal(t, 0, code)
	require.Contains(t, out, "missing 1\n  ghost 7 7 matmeh_5\n")

	code, _, stderr = execute("--data", dir, "graph", "check", "--strict")
	require.Equal(t, exitInconsistent, code)
	require.Contains(t, stderr, "0 dangling, 1 missing")
}

func TestGraphGrid(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(plan, []byte("..\n#.\n"), 0o644))
	target := filepath.Join(dir, "graph.json")

	code, _, stderr := execute("graph", "grid", plan, "--floor", "f", "--out", target)
	require.Equal(t, 0, code, stderr)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 3)
	require.ElementsMatch(t, []string{"0 0 f", "1 1 f"}, got["1 0 f"])

	code, _, stderr = execute("graph", "grid", plan)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, `"floor" not set`)
}

func TestMetricsReport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")
	store, err := metrics.Open(db)
	require.NoError(t, err)
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, ms := range []int64{7000, 9000, 100} {
		_, err := store.Record(context.Background(), metrics.Activity{StartedAt: day, ActiveMs: ms})
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())

	code, out, stderr := execute("metrics", "report", "--db", db)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "2025-03-01 good=2 bad=1 ratio=2.00%\n", out)

	code, out, _ = execute("--json", "metrics", "report", "--db", db)
	require.Equal(t, 0, code)
	require.Contains(t, out, `"ratio": "2.00%"`)
}

func TestConfigErrors(t *testing.T) {
	t.Setenv(config.EnvPrefix+"HEURISTIC", "taxicab")
	code, _, stderr := execute("graph", "check")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "taxicab")
}

func TestServe(t *testing.T) {
	dir := writeData(t)
	cfg := config.Default()
	cfg.Data.Dir = dir
	cfg.Metrics.DBPath = filepath.Join(t.TempDir(), "metrics.db")
	cfg.Server.ShutdownTimeout = time.Second
	a := &app{cfg: cfg, log: logging.Discard()}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Post(base+"/api/route/build", "application/json", strings.NewReader(`{"from":"501","to":"601"}`))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["found"])

	resp, err = http.Post(base+"/api/metric/build", "application/json",
		strings.NewReader(`{"activeMs":8000,"startedAt":"2025-03-01T10:00:00Z"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	store, err := metrics.Open(cfg.Metrics.DBPath)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
