// Package features turns raster cells into point features, the input of the tile pyramid.
package features

import (
	"github.com/go-spatial/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/pdok/rastertile/raster"
)

// Feature is a raster cell with data, located at the cell center.
type Feature struct {
	Point geom.Point // (lng, lat)
	Value float64
}

func (f Feature) Lng() float64 { return f.Point.X() }

func (f Feature) Lat() float64 { return f.Point.Y() }

// Project emits a feature for every cell with data, in raster index order.
func Project(grid *raster.Grid) []Feature {
	projected := make([]Feature, 0, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		value, ok := grid.Value(i)
		if !ok {
			continue
		}
		lng, lat := grid.IndexToCoordinate(i)
		projected = append(projected, Feature{Point: geom.Point{lng, lat}, Value: value})
	}
	return projected
}

// ToFeatureCollection renders the features as GeoJSON points with a "value" property.
func ToFeatureCollection(fs []Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range fs {
		gf := geojson.NewFeature(orb.Point(f.Point))
		gf.Properties["value"] = f.Value
		fc.Append(gf)
	}
	return fc
}
