// Package metrics records how long visitors actively used the map page and
// reports, per day, how many sessions fell inside the "good" duration band.
package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Default good band in milliseconds, inclusive at both ends.
const (
	DefaultGoodMinMs = 6000
	DefaultGoodMaxMs = 12000
)

var (
	// ErrInvalidActivity indicates a record that cannot be stored.
	ErrInvalidActivity = errors.New("metrics: invalid activity")
	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("metrics: store is closed")
)

// Activity is one page session reported by the browser.
type Activity struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	ActiveMs   int64     `json:"activeMs"`
	Name       string    `json:"name,omitempty"` // metric name, e.g. "map_active_time"
	Page       string    `json:"page,omitempty"`
	Reason     string    `json:"reason,omitempty"` // why the session ended
	RecordedAt time.Time `json:"recordedAt"`
}

// Day returns the calendar date of StartedAt in its own offset.
func (a Activity) Day() string { return a.StartedAt.Format(time.DateOnly) }

// DayStat counts sessions of one day inside (Good) and outside (Bad) the band.
type DayStat struct {
	Day  string `json:"day"`
	Good int    `json:"good"`
	Bad  int    `json:"bad"`
}

// Ratio renders Good/Bad as the daily report shows it: "no data" when the
// day is empty, "100%" when nothing was bad, else the quotient with a
// percent sign.
func (d DayStat) Ratio() string {
	switch {
	case d.Good == 0 && d.Bad == 0:
		return "no data"
	case d.Bad == 0:
		return "100%"
	default:
		return fmt.Sprintf("%.2f%%", float64(d.Good)/float64(d.Bad))
	}
}

// Option configures a Store.
type Option func(*Store)

// WithGoodRange sets the inclusive good band. Invalid ranges are ignored.
func WithGoodRange(minMs, maxMs int64) Option {
	return func(s *Store) {
		if minMs >= 0 && maxMs >= minMs {
			s.goodMin, s.goodMax = minMs, maxMs
		}
	}
}

// WithClock replaces time.Now for RecordedAt and ULID timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store persists activities in SQLite.
type Store struct {
	db      *sql.DB
	path    string
	goodMin int64
	goodMax int64
	now     func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("metrics: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("metrics: open database: %w", err)
	}

	s := &Store{
		db:      db,
		path:    path,
		goodMin: DefaultGoodMinMs,
		goodMax: DefaultGoodMaxMs,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("metrics: migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		started_at TEXT NOT NULL,
		active_ms INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		page TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		recorded_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activities_day ON activities(day);
	`
	_, err := s.db.Exec(schema)

	return err
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// GoodRange returns the inclusive good band in milliseconds.
func (s *Store) GoodRange() (minMs, maxMs int64) { return s.goodMin, s.goodMax }

// Record validates a, assigns ID and RecordedAt, and stores it.
func (s *Store) Record(ctx context.Context, a Activity) (Activity, error) {
	if a.StartedAt.IsZero() {
		return Activity{}, fmt.Errorf("%w: startedAt is missing", ErrInvalidActivity)
	}
	if a.ActiveMs < 0 {
		return Activity{}, fmt.Errorf("%w: activeMs %d is negative", ErrInvalidActivity, a.ActiveMs)
	}

	now := s.now()
	a.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	a.RecordedAt = now.UTC()
	a.Name = strings.TrimSpace(a.Name)
	a.Page = strings.TrimSpace(a.Page)
	a.Reason = strings.TrimSpace(a.Reason)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (id, day, started_at, active_ms, name, page, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Day(), a.StartedAt.Format(time.RFC3339Nano), a.ActiveMs, a.Name, a.Page, a.Reason, a.RecordedAt)
	if err != nil {
		return Activity{}, s.wrap("record", err)
	}

	return a, nil
}

// Daily returns per-day good/bad counts ordered by day.
func (s *Store) Daily(ctx context.Context) ([]DayStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day,
			SUM(CASE WHEN active_ms BETWEEN ? AND ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN active_ms BETWEEN ? AND ? THEN 0 ELSE 1 END)
		FROM activities
		GROUP BY day
		ORDER BY day
	`, s.goodMin, s.goodMax, s.goodMin, s.goodMax)
	if err != nil {
		return nil, s.wrap("daily", err)
	}
	defer rows.Close()

	var out []DayStat
	for rows.Next() {
		var d DayStat
		if err := rows.Scan(&d.Day, &d.Good, &d.Bad); err != nil {
			return nil, s.wrap("daily scan", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("daily", err)
	}

	return out, nil
}

// Count returns the number of stored activities.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, s.wrap("count", err)
	}

	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) wrap(op string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %s: %v", ErrClosed, op, err)
	}

	return fmt.Errorf("metrics: %s: %w", op, err)
}

// startedAtLayouts are the timestamp shapes browsers and older clients send.
var startedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseStartedAt parses a client timestamp. Values without an offset are UTC.
func ParseStartedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: startedAt %q is not an ISO-8601 timestamp", ErrInvalidActivity, s)
}
