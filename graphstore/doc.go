// Package graphstore loads the building graph and the cabinet name index
// and keeps them in memory for the route service.
//
// Data format
//
//	graph.json   {"x y floor": ["x y floor", ...], ...}
//	names.json   {"cabinet name": "x y floor", ...}
//
// Several graph files may be merged: JSONLoader selects them with a
// doublestar glob (for example "**/graph*.json") and appends the neighbor
// lists of keys that occur in more than one file, skipping duplicates.
//
// Cache
//
// Cache wraps a Loader. The first call to Snapshot, Graph or Names loads
// both files together under a mutex (check, lock, recheck, populate) and
// publishes an immutable *Snapshot through an atomic pointer; later reads
// never lock. Reload builds a fresh snapshot under the same mutex and swaps
// the pointer; if loading fails the previous snapshot stays in service.
// A failed first load is not cached, so the next call retries.
//
// Errors
//
//   - *core.NotFoundError (Kind source): no graph file matches the glob, or
//     the names file is missing.
//   - *core.FormatError: a key or value is not "x y floor".
//   - core.ErrFormat (wrapped): a file is not valid JSON of the expected shape.
package graphstore
