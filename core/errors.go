package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the routing data model.
var (
	// ErrNotFound indicates a missing backing source or an unknown room name.
	ErrNotFound = errors.New("core: not found")

	// ErrFormat indicates a coordinate token that cannot be parsed.
	ErrFormat = errors.New("core: malformed coordinate")

	// ErrInconsistentData indicates that a named cabinet refers to a
	// coordinate that is not a node of the adjacency graph.
	ErrInconsistentData = errors.New("core: inconsistent graph data")

	// ErrArgument indicates a search endpoint that is not a key of the graph.
	ErrArgument = errors.New("core: invalid search argument")

	// ErrPointNotFound indicates an Adjacency lookup for a coordinate that is not a key.
	ErrPointNotFound = errors.New("core: point not in graph")

	// ErrUnknownHeuristic indicates an unrecognised heuristic name.
	ErrUnknownHeuristic = errors.New("core: unknown heuristic")
)

// NotFoundKind tells which lookup failed.
type NotFoundKind string

const (
	// KindSource marks a missing graph or names source.
	KindSource NotFoundKind = "source"
	// KindStart marks an unknown start room name.
	KindStart NotFoundKind = "start"
	// KindEnd marks an unknown end room name.
	KindEnd NotFoundKind = "end"
)

// NotFoundError wraps ErrNotFound with what was looked up.
type NotFoundError struct {
	Kind NotFoundKind
	Name string // room name or source path
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindStart:
		return fmt.Sprintf("start location unknown: %q", e.Name)
	case KindEnd:
		return fmt.Sprintf("end location unknown: %q", e.Name)
	default:
		return fmt.Sprintf("graph source not found: %s", e.Name)
	}
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// FormatError wraps ErrFormat with the offending token and the parse cause.
type FormatError struct {
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid coordinate %q", e.Token)
	}

	return fmt.Sprintf("invalid coordinate %q: %v", e.Token, e.Err)
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}

	return []error{ErrFormat, e.Err}
}

// InconsistentDataError wraps ErrInconsistentData with the cabinet whose
// location is missing from the graph.
type InconsistentDataError struct {
	Cabinet Cabinet
}

func (e *InconsistentDataError) Error() string {
	return fmt.Sprintf("cabinet %q at %s is not a graph node", e.Cabinet.Name, e.Cabinet.Location)
}

func (e *InconsistentDataError) Unwrap() error { return ErrInconsistentData }

// ArgumentError wraps ErrArgument with the search endpoint that is absent
// from the graph. Role is "start" or "end".
type ArgumentError struct {
	Role  string
	Point Coordinate
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s point %s not found in graph", e.Role, e.Point)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsFormat reports whether err is (or wraps) ErrFormat.
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }

// IsInconsistent reports whether err is (or wraps) ErrInconsistentData.
func IsInconsistent(err error) bool { return errors.Is(err, ErrInconsistentData) }

// IsArgument reports whether err is (or wraps) ErrArgument.
func IsArgument(err error) bool { return errors.Is(err, ErrArgument) }
