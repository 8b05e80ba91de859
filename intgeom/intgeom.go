// Package intgeom holds points and extents with int64 ordinates.
//
// The tile pyramid projects every feature once onto an integer grid at its
// deepest resolution (extent * 2^maxZoom cells per axis) and derives all
// shallower tile-local coordinates from there with shifts. Doing that with
// integers keeps a point in exactly one tile per level, whatever rounding
// the float projection did.
package intgeom

import (
	"fmt"

	"github.com/pdok/rastertile/mathhelp"
)

// M is short for measure: an ordinate on the integer grid.
type M = int64

// Point describes a simple 2D point
type Point [2]M

// X is the column on the grid, growing east
func (p Point) X() M { return p[0] }

// Y is the row on the grid, growing south
func (p Point) Y() M { return p[1] }

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Point {
	return Point{p[0] - o[0], p[1] - o[1]}
}

// Shift moves the point to a coarser grid, dividing both ordinates by 2^n (rounding half up).
func (p Point) Shift(n uint) Point {
	return Point{mathhelp.RoundShift(p[0], n), mathhelp.RoundShift(p[1], n)}
}

// Cell returns the cell of a size x size grid the point falls in.
func (p Point) Cell(size M) Point {
	return Point{mathhelp.FloorDiv(p[0], size), mathhelp.FloorDiv(p[1], size)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d %d)", p[0], p[1])
}
