// Package config loads the service configuration: built-in defaults, then an
// optional YAML file, then CABINETROUTE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CABINETROUTE_"

// Search strategies.
const (
	StrategyAStar = "astar"
	StrategyBFS   = "bfs"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full service configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Data    Data    `yaml:"data"`
	Search  Search  `yaml:"search"`
	Metrics Metrics `yaml:"metrics"`
	Log     Log     `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir"` // empty disables static files
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Data locates the graph and names files.
type Data struct {
	Dir       string `yaml:"dir"`
	GraphGlob string `yaml:"graph_glob"`
	NamesFile string `yaml:"names_file"`
}

// Search selects the route engine.
type Search struct {
	Strategy      string `yaml:"strategy"`
	Heuristic     string `yaml:"heuristic"`
	MaxExpansions int    `yaml:"max_expansions"`
}

// Metrics configures the activity store.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	DBPath    string `yaml:"db_path"`
	GoodMinMs int64  `yaml:"good_min_ms"`
	GoodMaxMs int64  `yaml:"good_max_ms"`
}

// Log configures slog output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			StaticDir:       "",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Data: Data{
			Dir:       "data",
			GraphGlob: "graph.json",
			NamesFile: "names.json",
		},
		Search: Search{
			Strategy:      StrategyAStar,
			Heuristic:     "manhattan",
			MaxExpansions: 0,
		},
		Metrics: Metrics{
			Enabled:   true,
			DBPath:    "metrics.db",
			GoodMinMs: 6000,
			GoodMaxMs: 12000,
		},
		Log: Log{
			Level:  logging.LevelInfo,
			Format: logging.FormatText,
		},
	}
}

// Load reads path (if non-empty) over Default, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}
	if c.Data.Dir == "" {
		errs = append(errs, errors.New("data.dir is empty"))
	}
	switch c.Search.Strategy {
	case StrategyAStar, StrategyBFS:
	default:
		errs = append(errs, fmt.Errorf("search.strategy %q is not astar or bfs", c.Search.Strategy))
	}
	if _, err := core.HeuristicByName(c.Search.Heuristic); err != nil {
		errs = append(errs, err)
	}
	if c.Search.MaxExpansions < 0 {
		errs = append(errs, errors.New("search.max_expansions must be non-negative"))
	}
	if c.Metrics.Enabled && c.Metrics.DBPath == "" {
		errs = append(errs, errors.New("metrics.db_path is empty"))
	}
	if c.Metrics.GoodMinMs < 0 || c.Metrics.GoodMaxMs < c.Metrics.GoodMinMs {
		errs = append(errs, fmt.Errorf("metrics good range [%d, %d] is invalid", c.Metrics.GoodMinMs, c.Metrics.GoodMaxMs))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// applyEnv overrides fields from lookup(EnvPrefix + NAME).
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int64) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("ADDR", &c.Server.Addr)
	str("STATIC_DIR", &c.Server.StaticDir)
	dur("READ_TIMEOUT", &c.Server.ReadTimeout)
	dur("WRITE_TIMEOUT", &c.Server.WriteTimeout)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	str("DATA_DIR", &c.Data.Dir)
	str("GRAPH_GLOB", &c.Data.GraphGlob)
	str("NAMES_FILE", &c.Data.NamesFile)
	str("STRATEGY", &c.Search.Strategy)
	str("HEURISTIC", &c.Search.Heuristic)
	maxExp := int64(c.Search.MaxExpansions)
	integer("MAX_EXPANSIONS", &maxExp)
	c.Search.MaxExpansions = int(maxExp)
	boolean("METRICS_ENABLED", &c.Metrics.Enabled)
	str("METRICS_DB", &c.Metrics.DBPath)
	integer("GOOD_MIN_MS", &c.Metrics.GoodMinMs)
	integer("GOOD_MAX_MS", &c.Metrics.GoodMaxMs)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}
