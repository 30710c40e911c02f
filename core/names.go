package core

import "sort"

// NameIndex resolves room names (exact, case-sensitive) to Cabinets and keeps
// the reverse Coordinate -> name mapping so a point can be labelled without
// scanning every entry.
//
// A NameIndex is immutable after NewNameIndex and safe for concurrent reads.
// All methods are nil-safe and behave as on an empty index.
type NameIndex struct {
	byName     map[string]Cabinet
	byLocation map[Coordinate]string
}

// NewNameIndex builds an index from name -> location pairs.
// When several names share one location, NameAt reports the
// lexicographically smallest of them.
// Complexity: O(N).
func NewNameIndex(locations map[string]Coordinate) *NameIndex {
	idx := &NameIndex{
		byName:     make(map[string]Cabinet, len(locations)),
		byLocation: make(map[Coordinate]string, len(locations)),
	}
	for name, loc := range locations {
		idx.byName[name] = Cabinet{Name: name, Location: loc}
		if prev, ok := idx.byLocation[loc]; ok && prev < name {
			continue
		}
		idx.byLocation[loc] = name
	}

	return idx
}

// Lookup returns the cabinet registered under name.
func (idx *NameIndex) Lookup(name string) (Cabinet, bool) {
	if idx == nil {
		return Cabinet{}, false
	}
	cb, ok := idx.byName[name]

	return cb, ok
}

// NameAt returns the name of the cabinet located at c, if any.
func (idx *NameIndex) NameAt(c Coordinate) (string, bool) {
	if idx == nil {
		return "", false
	}
	name, ok := idx.byLocation[c]

	return name, ok
}

// Label returns the cabinet name at c, or c.String() when nothing is there.
func (idx *NameIndex) Label(c Coordinate) string {
	if name, ok := idx.NameAt(c); ok {
		return name
	}

	return c.String()
}

// Len returns the number of names.
func (idx *NameIndex) Len() int {
	if idx == nil {
		return 0
	}

	return len(idx.byName)
}

// Names returns every registered name in sorted order.
func (idx *NameIndex) Names() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, 0, len(idx.byName))
	for name := range idx.byName {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Cabinets returns every cabinet sorted by name.
func (idx *NameIndex) Cabinets() []Cabinet {
	names := idx.Names()
	out := make([]Cabinet, 0, len(names))
	for _, name := range names {
		out = append(out, idx.byName[name])
	}

	return out
}

// Missing returns the cabinets whose locations are not keys of g, sorted by name.
func (idx *NameIndex) Missing(g Adjacency) []Cabinet {
	var out []Cabinet
	for _, cb := range idx.Cabinets() {
		if !g.Has(cb.Location) {
			out = append(out, cb)
		}
	}

	return out
}
