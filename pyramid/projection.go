package pyramid

import (
	"math"

	"github.com/go-spatial/geom"

	"github.com/pdok/rastertile/intgeom"
	"github.com/pdok/rastertile/mathhelp"
)

// normalize projects (lng, lat) onto spherical web mercator scaled to [0, 1] x [0, 1],
// with y growing southward. Latitudes beyond the mercator limits are clamped.
func normalize(lng, lat float64) (x, y float64) {
	x = lng/360 + 0.5
	sin := math.Sin(lat * math.Pi / 180)
	y = 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	return mathhelp.Clamp(x, 0, 1), mathhelp.Clamp(y, 0, 1)
}

// denormalize is the inverse of normalize.
func denormalize(x, y float64) (lng, lat float64) {
	lng = (x - 0.5) * 360
	y2 := (180 - y*360) * math.Pi / 180
	lat = 360*math.Atan(math.Exp(y2))/math.Pi - 90
	return lng, lat
}

// toWorld places (lng, lat) on the deepest level grid of worldSize cells per axis.
// The east and south edges of the world fall into the last cell.
func toWorld(lng, lat float64, worldSize int64) intgeom.Point {
	x, y := normalize(lng, lat)
	return intgeom.Point{
		mathhelp.Clamp(int64(math.Floor(x*float64(worldSize))), 0, worldSize-1),
		mathhelp.Clamp(int64(math.Floor(y*float64(worldSize))), 0, worldSize-1),
	}
}

// fromWorld returns the (lng, lat) of a deepest level grid position.
func fromWorld(p intgeom.Point, worldSize int64) geom.Point {
	lng, lat := denormalize(float64(p.X())/float64(worldSize), float64(p.Y())/float64(worldSize))
	return geom.Point{lng, lat}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
