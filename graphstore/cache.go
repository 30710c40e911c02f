package graphstore

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/internal/logging"
)

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger for load and reload records.
func WithLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.log = logging.OrDiscard(log)
	}
}

// WithClock replaces time.Now for LoadedAt stamps.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Cache lazily loads and holds the current Snapshot. It is safe for
// concurrent use.
type Cache struct {
	loader Loader
	log    *slog.Logger
	now    func() time.Time

	mu      sync.Mutex // serialises loads
	current atomic.Pointer[Snapshot]
	version uint64 // guarded by mu
}

// NewCache returns an empty cache over loader. Nothing is read until the
// first accessor call.
func NewCache(loader Loader, opts ...CacheOption) *Cache {
	c := &Cache{
		loader: loader,
		log:    logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Snapshot returns the current snapshot, loading it on first use.
func (c *Cache) Snapshot() (*Snapshot, error) {
	if s := c.current.Load(); s != nil {
		return s, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.current.Load(); s != nil {
		return s, nil
	}

	return c.loadLocked("load")
}

// Graph returns the graph of the current snapshot.
func (c *Cache) Graph() (core.Adjacency, error) {
	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}

	return s.Graph, nil
}

// Names returns the name index of the current snapshot.
func (c *Cache) Names() (*core.NameIndex, error) {
	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}

	return s.Names, nil
}

// Loaded reports whether a snapshot is in service.
func (c *Cache) Loaded() bool {
	return c.current.Load() != nil
}

// Reload reads a fresh snapshot and swaps it in. On error the previous
// snapshot, if any, keeps serving.
func (c *Cache) Reload() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked("reload")
}

// loadLocked reads both halves and publishes them. c.mu must be held.
func (c *Cache) loadLocked(op string) (*Snapshot, error) {
	start := c.now()

	g, err := c.loader.LoadGraph()
	if err != nil {
		c.log.Error("graph "+op+" failed", slog.Any("err", err))
		return nil, fmt.Errorf("graphstore: %s graph: %w", op, err)
	}
	names, err := c.loader.LoadNames()
	if err != nil {
		c.log.Error("names "+op+" failed", slog.Any("err", err))
		return nil, fmt.Errorf("graphstore: %s names: %w", op, err)
	}

	c.version++
	s := &Snapshot{Graph: g, Names: names, Version: c.version, LoadedAt: c.now()}
	c.current.Store(s)

	sum := s.Summary()
	c.log.Info("graph "+op+"ed",
		slog.Uint64("version", sum.Version),
		slog.Int("points", sum.Points),
		slog.Int("links", sum.Links),
		slog.Int("names", sum.Names),
		slog.Int("dangling", sum.Dangling),
		slog.Int("missing", sum.Missing),
		slog.Duration("took", s.LoadedAt.Sub(start)),
	)
	if sum.Missing > 0 {
		for _, cb := range names.Missing(g) {
			c.log.Warn("cabinet location is not a graph node", slog.String("cabinet", cb.Name), slog.String("at", cb.Location.Text()))
		}
	}

	return s, nil
}
