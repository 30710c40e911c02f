// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinate is a point in a single floor's local 2D space.
//
// Floor is the building+level tag (e.g. "matmeh_5"). Coordinate is a
// comparable value and is used directly as a map key.
type Coordinate struct {
	X     int
	Y     int
	Floor string
}

// C is shorthand for Coordinate{X: x, Y: y, Floor: floor}.
func C(x, y int, floor string) Coordinate {
	return Coordinate{X: x, Y: y, Floor: floor}
}

// Manhattan returns |dx| + |dy| to o. Floor is ignored.
func (c Coordinate) Manhattan(o Coordinate) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Euclidean returns the straight-line planar distance to o. Floor is ignored.
func (c Coordinate) Euclidean(o Coordinate) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)

	return math.Sqrt(dx*dx + dy*dy)
}

// SameFloor reports whether c and o carry the same floor tag.
func (c Coordinate) SameFloor(o Coordinate) bool {
	return c.Floor == o.Floor
}

// String renders the coordinate for logs and error messages: "(x, y, floor)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %s)", c.X, c.Y, c.Floor)
}

// Text renders the textual source form "x y floor" accepted by ParseCoordinate.
func (c Coordinate) Text() string {
	return strconv.Itoa(c.X) + " " + strconv.Itoa(c.Y) + " " + c.Floor
}

// Less orders coordinates by Floor, then Y, then X.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Floor != o.Floor {
		return c.Floor < o.Floor
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}

	return c.X < o.X
}

// ParseCoordinate parses the textual form "<int> <int> <floor-tag>".
// Fields are separated by any run of whitespace. Anything other than
// exactly three fields with integer X and Y yields a *FormatError.
func ParseCoordinate(s string) (Coordinate, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Coordinate{}, &FormatError{
			Token: s,
			Err:   fmt.Errorf("want 3 fields, got %d", len(fields)),
		}
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Coordinate{}, &FormatError{Token: s, Err: err}
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Coordinate{}, &FormatError{Token: s, Err: err}
	}

	return Coordinate{X: x, Y: y, Floor: fields[2]}, nil
}

// Cabinet is a named room pinned to a Coordinate.
type Cabinet struct {
	Name     string
	Location Coordinate
}

// String renders "name (x, y, floor)".
func (cb Cabinet) String() string {
	return cb.Name + " " + cb.Location.String()
}

// Route is the result of a path query: both endpoint cabinets and the ordered
// points that connect them. An empty Points slice means no route exists.
type Route struct {
	Start  Cabinet
	End    Cabinet
	Points []Coordinate
}

// Found reports whether the route carries at least one point.
func (r Route) Found() bool {
	return len(r.Points) > 0
}

// Steps returns the number of traversed edges (0 for an empty or single-point route).
func (r Route) Steps() int {
	if len(r.Points) == 0 {
		return 0
	}

	return len(r.Points) - 1
}

// Floors lists the floor tags visited by the route, in traversal order,
// without repeating consecutive duplicates.
func (r Route) Floors() []string {
	var floors []string
	for _, p := range r.Points {
		if n := len(floors); n > 0 && floors[n-1] == p.Floor {
			continue
		}
		floors = append(floors, p.Floor)
	}

	return floors
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
