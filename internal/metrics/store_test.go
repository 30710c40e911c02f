package metrics_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

func openStore(t *testing.T, opts ...metrics.Option) *metrics.Store {
	t.Helper()
	s, err := metrics.Open(filepath.Join(t.TempDir(), "sub", "metrics.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := metrics.ParseStartedAt(s)
	require.NoError(t, err)

	return ts
}

func TestRecord_AssignsIDAndTime(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := openStore(t, metrics.WithClock(func() time.Time { return fixed }))

	a, err := s.Record(context.Background(), metrics.Activity{
		StartedAt: at(t, "2025-03-01T11:59:00.000Z"),
		ActiveMs:  7000,
		Page:      " /index.html ",
	})
	require.NoError(t, err)

	id, err := ulid.ParseStrict(a.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(fixed.UnixMilli()), id.Time())
	require.Equal(t, fixed, a.RecordedAt)
	require.Equal(t, "/index.html", a.Page)
	require.Equal(t, "2025-03-01", a.Day())

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRecord_Invalid(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, metrics.Activity{ActiveMs: 10})
	require.ErrorIs(t, err, metrics.ErrInvalidActivity)

	_, err = s.Record(ctx, metrics.Activity{StartedAt: time.Now(), ActiveMs: -1})
	require.ErrorIs(t, err, metrics.ErrInvalidActivity)
}

func TestDaily_GoodBad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	records := []struct {
		startedAt string
		ms        int64
	}{
		{"2025-03-02T09:00:00Z", 6000},  // good, lower edge
		{"2025-03-02T09:05:00Z", 12000}, // good, upper edge
		{"2025-03-02T10:00:00Z", 5999},  // bad
		{"2025-03-01T08:00:00Z", 20000}, // bad
		{"2025-03-03T08:00:00", 8000},   // good, no offset
	}
	for _, r := range records {
		_, err := s.Record(ctx, metrics.Activity{StartedAt: at(t, r.startedAt), ActiveMs: r.ms})
		require.NoError(t, err)
	}

	days, err := s.Daily(ctx)
	require.NoError(t, err)
	require.Equal(t, []metrics.DayStat{
		{Day: "2025-03-01", Good: 0, Bad: 1},
		{Day: "2025-03-02", Good: 2, Bad: 1},
		{Day: "2025-03-03", Good: 1, Bad: 0},
	}, days)

	require.Equal(t, "0.00%", days[0].Ratio())
	require.Equal(t, "2.00%", days[1].Ratio())
	require.Equal(t, "100%", days[2].Ratio())
	require.Equal(t, "no data", metrics.DayStat{Day: "x"}.Ratio())
}

func TestDaily_CustomRangeAndEmpty(t *testing.T) {
	s := openStore(t, metrics.WithGoodRange(0, 100))
	ctx := context.Background()

	days, err := s.Daily(ctx)
	require.NoError(t, err)
	require.Empty(t, days)

	_, err = s.Record(ctx, metrics.Activity{StartedAt: at(t, "2025-01-01T00:00:00Z"), ActiveMs: 50})
	require.NoError(t, err)
	days, err = s.Daily(ctx)
	require.NoError(t, err)
	require.Equal(t, []metrics.DayStat{{Day: "2025-01-01", Good: 1}}, days)

	lo, hi := s.GoodRange()
	require.Equal(t, [2]int64{0, 100}, [2]int64{lo, hi})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	s, err := metrics.Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), metrics.Activity{StartedAt: time.Now(), ActiveMs: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Count(context.Background())
	require.ErrorIs(t, err, metrics.ErrClosed)

	s, err = metrics.Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestParseStartedAt(t *testing.T) {
	_, err := metrics.ParseStartedAt("yesterday")
	require.ErrorIs(t, err, metrics.ErrInvalidActivity)

	ts, err := metrics.ParseStartedAt("2025-03-01T10:00:00+05:00")
	require.NoError(t, err)
	require.Equal(t, "2025-03-01", metrics.Activity{StartedAt: ts}.Day())
}
