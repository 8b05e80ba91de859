// Package raster holds a decoded scalar grid and maps between
// geographic coordinates and cell indices.
//
// Cells are row-major with the origin at the upper-left cell center:
//
//	originLng      originLng + (columns-1)*lngStep
//	    |                 |
//	    0   1   2  ...  columns-1         <- originLat
//	 columns  ...                          <- originLat - latStep
//	    ...
//
// Rows grow southward, columns grow eastward.
package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-spatial/geom"

	"github.com/pdok/rastertile/mathhelp"
)

// NoData marks a cell without a measurement.
var NoData = math.NaN()

// Grid is an immutable raster of float64 samples plus its georeferencing.
type Grid struct {
	cells     []float64
	Rows      int
	Columns   int
	OriginLat float64
	OriginLng float64
	LatStep   float64
	LngStep   float64
}

// NewGrid wraps cells (row-major, NaN for no-data) into a Grid.
// The cells slice is owned by the Grid afterwards.
func NewGrid(cells []float64, rows, columns int, originLat, originLng, latStep, lngStep float64) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("grid needs positive dimensions, got %d rows and %d columns", rows, columns)
	}
	if rows*columns != len(cells) {
		return nil, fmt.Errorf("grid of %d x %d needs %d cells, got %d", rows, columns, rows*columns, len(cells))
	}
	if !(latStep > 0) || !(lngStep > 0) {
		return nil, errors.New("grid cell size should be positive")
	}
	return &Grid{
		cells:     cells,
		Rows:      rows,
		Columns:   columns,
		OriginLat: originLat,
		OriginLng: originLng,
		LatStep:   latStep,
		LngStep:   lngStep,
	}, nil
}

// Len is the number of cells, rows * columns.
func (g *Grid) Len() int {
	return len(g.cells)
}

// CoordinateToIndex maps a point to the index of the cell it falls in.
//
// Only the north and west edges are checked against the coordinate itself;
// everything else is caught by the range check on the linear index. So a
// longitude past the east edge wraps into the next row as long as that row
// exists. This matches how the data has always been addressed.
func (g *Grid) CoordinateToIndex(lat, lng float64) (int, bool) {
	if lat > g.OriginLat || lng < g.OriginLng {
		return -1, false
	}
	row := mathhelp.SnapFloor((g.OriginLat - lat) / g.LatStep)
	col := mathhelp.SnapFloor((lng - g.OriginLng) / g.LngStep)
	i := row*float64(g.Columns) + col
	if math.IsNaN(i) || i < 0 || i >= float64(len(g.cells)) {
		return -1, false
	}
	return int(i), true
}

// IndexToCoordinate returns the center of cell i as (lng, lat).
func (g *Grid) IndexToCoordinate(i int) (lng, lat float64) {
	row := i / g.Columns
	col := i % g.Columns
	return float64(col)*g.LngStep + g.OriginLng, g.OriginLat - float64(row)*g.LatStep
}

// Value returns the sample of cell i, false for no-data or an index out of range.
func (g *Grid) Value(i int) (float64, bool) {
	if i < 0 || i >= len(g.cells) {
		return 0, false
	}
	v := g.cells[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ValueAt returns the sample at a point, false outside the grid or on no-data.
func (g *Grid) ValueAt(lat, lng float64) (float64, bool) {
	i, ok := g.CoordinateToIndex(lat, lng)
	if !ok {
		return 0, false
	}
	return g.Value(i)
}

// Bounds is the extent of the cell centers in (lng, lat).
func (g *Grid) Bounds() geom.Extent {
	maxLng, minLat := g.IndexToCoordinate(len(g.cells) - 1)
	return geom.Extent{g.OriginLng, minLat, maxLng, g.OriginLat}
}
