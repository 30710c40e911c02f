// Package core defines the data model shared by every routing component:
// planar Coordinates tagged with a floor, named Cabinets, the Adjacency
// graph of walkable links, the NameIndex that resolves room names, and the
// Route returned by a path query.
//
// All values are immutable after construction. An Adjacency or NameIndex is
// built once by a loader and then only read, so any number of goroutines may
// query them concurrently without locking.
//
// Coordinates:
//
//	A Coordinate is (X, Y, Floor). Equality and map-key identity include all
//	three fields: two points with the same X/Y on different floors are
//	different nodes. Distance metrics (Manhattan, Euclidean) are planar and
//	ignore Floor.
//
// Textual form:
//
//	"<int> <int> <floor-tag>", for example "120 45 matmeh_5".
//	ParseCoordinate returns a *FormatError for anything else.
//
// Errors:
//
//	ErrNotFound         - missing backing source, or unknown start/end room name.
//	ErrFormat           - coordinate token could not be parsed.
//	ErrInconsistentData - a named cabinet sits on a coordinate that is not a graph node.
//	ErrArgument         - search endpoint is not a key of the graph.
//	ErrPointNotFound    - Adjacency lookup for a coordinate that is not a key.
//
// Typed errors (NotFoundError, FormatError, InconsistentDataError,
// ArgumentError) carry the offending name or point and unwrap to the
// matching sentinel, so callers can use either errors.Is or errors.As.
package core
