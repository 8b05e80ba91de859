// Package bounds answers queries over the raster cells inside a bounding box.
package bounds

import (
	"iter"
	"math"
	"slices"

	"github.com/go-spatial/geom"

	"github.com/pdok/rastertile/mathhelp"
	"github.com/pdok/rastertile/raster"
)

// Sample is a cell value found inside a bounding box, with the point it was looked up at.
type Sample struct {
	Index int
	Value float64
	Lat   float64
	Lng   float64
}

// Corner is a (lat, lng) pair as given by a caller.
type Corner = geom.Point

// Normalize rearranges any two corners into (south, west) and (north, east).
func Normalize(corner0, corner1 Corner) (southWest, northEast Corner) {
	southWest = Corner{math.Min(corner0[0], corner1[0]), math.Min(corner0[1], corner1[1])}
	northEast = Corner{math.Max(corner0[0], corner1[0]), math.Max(corner0[1], corner1[1])}
	return southWest, northEast
}

// ValuesWithinBounds walks the box between two (lat, lng) corners in grid-sized steps,
// longitude first, then latitude, both ascending and inclusive, yielding every point
// that hits a cell with data. The sequence can be ranged over any number of times.
//
// The walk stays on the caller's lattice (west + k*LngStep, south + k*LatStep) but
// only visits the part of it that can reach a cell, so a huge box costs no more
// than one covering the grid. A box with a non-finite corner holds nothing.
func ValuesWithinBounds(corner0, corner1 Corner, grid *raster.Grid) iter.Seq[Sample] {
	southWest, northEast := Normalize(corner0, corner1)
	south, west := southWest[0], southWest[1]
	north, east := northEast[0], northEast[1]
	return func(yield func(Sample) bool) {
		if grid.LatStep <= 0 || grid.LngStep <= 0 || !finite(south, west, north, east) {
			return
		}
		// longitudes past the east edge wrap into the next row, so the reachable
		// range runs up to the end of the last row
		extent := grid.Bounds()
		firstLng, lngs := lattice(west, east, grid.LngStep,
			extent.MinX()-grid.LngStep, grid.OriginLng+float64(grid.Len()+1)*grid.LngStep)
		firstLat, lats := lattice(south, north, grid.LatStep,
			extent.MinY()-2*grid.LatStep, extent.MaxY()+grid.LatStep)
		for i := range lngs {
			lng := firstLng + float64(i)*grid.LngStep
			for j := range lats {
				lat := firstLat + float64(j)*grid.LatStep
				index, ok := grid.CoordinateToIndex(lat, lng)
				if !ok {
					continue
				}
				value, ok := grid.Value(index)
				if !ok {
					continue
				}
				if !yield(Sample{Index: index, Value: value, Lat: lat, Lng: lng}) {
					return
				}
			}
		}
	}
}

// lattice returns the first point and the number of points of start, start+step, ...
// that lie within both [start, end] and [lo, hi].
func lattice(start, end, step, lo, hi float64) (first float64, n int) {
	if start < lo {
		offset := math.Mod(start-lo, step)
		if offset < 0 {
			offset += step
		}
		start = lo + offset
	}
	end = math.Min(end, hi)
	if start > end {
		return start, 0
	}
	return start, int(mathhelp.SnapFloor((end-start)/step)) + 1
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Average is the mean of the values inside the box between (lat0, lng0) and (lat1, lng1).
// ok is false when the box holds no values at all.
func Average(lat0, lng0, lat1, lng1 float64, grid *raster.Grid) (avg float64, ok bool) {
	var sum float64
	var n int
	for s := range ValuesWithinBounds(Corner{lat0, lng0}, Corner{lat1, lng1}, grid) {
		sum += s.Value
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Collect drains a sequence of samples into a slice.
func Collect(samples iter.Seq[Sample]) []Sample {
	return slices.Collect(samples)
}
