package graphstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/internal/logging"
)

// Defaults used by NewJSONLoader.
const (
	DefaultGraphGlob = "graph.json"
	DefaultNamesFile = "names.json"
)

// ErrBadGlob indicates an invalid graph file pattern.
var ErrBadGlob = errors.New("graphstore: invalid graph glob")

// LoaderOption configures a JSONLoader.
type LoaderOption func(*JSONLoader)

// WithGraphGlob selects graph files by doublestar pattern. Empty keeps the default.
func WithGraphGlob(pattern string) LoaderOption {
	return func(l *JSONLoader) {
		if pattern != "" {
			l.graphGlob = pattern
		}
	}
}

// WithNamesFile sets the names file path inside the root. Empty keeps the default.
func WithNamesFile(name string) LoaderOption {
	return func(l *JSONLoader) {
		if name != "" {
			l.namesFile = name
		}
	}
}

// WithLoaderLogger sets the logger for per-file debug records.
func WithLoaderLogger(log *slog.Logger) LoaderOption {
	return func(l *JSONLoader) {
		l.log = logging.OrDiscard(log)
	}
}

// JSONLoader reads graph and names files from an fs.FS.
type JSONLoader struct {
	fsys      fs.FS
	graphGlob string
	namesFile string
	log       *slog.Logger
}

var _ Loader = (*JSONLoader)(nil)

// NewJSONLoader returns a loader rooted at fsys.
func NewJSONLoader(fsys fs.FS, opts ...LoaderOption) *JSONLoader {
	l := &JSONLoader{
		fsys:      fsys,
		graphGlob: DefaultGraphGlob,
		namesFile: DefaultNamesFile,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Dir returns a JSONLoader rooted at a directory on disk.
func Dir(path string, opts ...LoaderOption) *JSONLoader {
	return NewJSONLoader(os.DirFS(path), opts...)
}

// GraphFiles lists the files matching the graph glob, sorted.
func (l *JSONLoader) GraphFiles() ([]string, error) {
	if !doublestar.ValidatePattern(l.graphGlob) {
		return nil, fmt.Errorf("%w: %q", ErrBadGlob, l.graphGlob)
	}
	var files []string
	err := doublestar.GlobWalk(l.fsys, l.graphGlob, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("graphstore: glob %q: %w", l.graphGlob, err)
	}
	sort.Strings(files)

	return files, nil
}

// LoadGraph reads and merges every graph file matching the glob.
func (l *JSONLoader) LoadGraph() (core.Adjacency, error) {
	files, err := l.GraphFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &core.NotFoundError{Kind: core.KindSource, Name: l.graphGlob}
	}

	g := make(core.Adjacency)
	for _, name := range files {
		raw := map[string][]string{}
		if err := l.readJSON(name, &raw); err != nil {
			return nil, err
		}
		for key, values := range raw {
			from, err := core.ParseCoordinate(key)
			if err != nil {
				return nil, fmt.Errorf("graphstore: %s: %w", name, err)
			}
			g.AddNode(from)
			for _, v := range values {
				to, err := core.ParseCoordinate(v)
				if err != nil {
					return nil, fmt.Errorf("graphstore: %s: key %q: %w", name, key, err)
				}
				appendUnique(g, from, to)
			}
		}
		l.log.Debug("graph file read", slog.String("file", name), slog.Int("keys", len(raw)))
	}

	return g, nil
}

// LoadNames reads the names file into a NameIndex.
func (l *JSONLoader) LoadNames() (*core.NameIndex, error) {
	raw := map[string]string{}
	if err := l.readJSON(l.namesFile, &raw); err != nil {
		return nil, err
	}
	locations := make(map[string]core.Coordinate, len(raw))
	for name, text := range raw {
		c, err := core.ParseCoordinate(text)
		if err != nil {
			return nil, fmt.Errorf("graphstore: %s: cabinet %q: %w", l.namesFile, name, err)
		}
		locations[name] = c
	}
	l.log.Debug("names file read", slog.String("file", l.namesFile), slog.Int("names", len(raw)))

	return core.NewNameIndex(locations), nil
}

// readJSON decodes one file. A missing file is a source NotFoundError;
// undecodable content wraps core.ErrFormat.
func (l *JSONLoader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return &core.NotFoundError{Kind: core.KindSource, Name: name}
	}
	if err != nil {
		return fmt.Errorf("graphstore: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrFormat, name, err)
	}

	return nil
}

// appendUnique adds to as a neighbor of from unless already listed.
func appendUnique(g core.Adjacency, from, to core.Coordinate) {
	for _, n := range g[from] {
		if n == to {
			return
		}
	}
	g[from] = append(g[from], to)
}

// EncodeGraph writes g in graph.json form with keys sorted.
func EncodeGraph(w io.Writer, g core.Adjacency) error {
	out := make(map[string][]string, g.Len())
	for from, nbs := range g {
		list := make([]string, len(nbs))
		for i, n := range nbs {
			list[i] = n.Text()
		}
		out[from.Text()] = list
	}

	return encode(w, out)
}

// EncodeNames writes idx in names.json form.
func EncodeNames(w io.Writer, idx *core.NameIndex) error {
	out := make(map[string]string, idx.Len())
	for _, cb := range idx.Cabinets() {
		out[cb.Name] = cb.Location.Text()
	}

	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("graphstore: encode: %w", err)
	}

	return nil
}
