package bounds

import (
	"iter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToFeatureCollection renders samples as GeoJSON points with index and value properties.
func ToFeatureCollection(samples iter.Seq[Sample]) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for s := range samples {
		f := geojson.NewFeature(orb.Point{s.Lng, s.Lat})
		f.Properties["index"] = s.Index
		f.Properties["value"] = s.Value
		fc.Append(f)
	}
	return fc
}
