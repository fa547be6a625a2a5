package dataset

import (
	"accident-map/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection converts accident points to GeoJSON point features.
func FeatureCollection(points []model.AccidentPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range points {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.Properties["index"] = i
		fc.Append(f)
	}
	return fc
}
