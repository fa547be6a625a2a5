package routing

import (
	"accident-map/model"

	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders routes as LineString features, best first.
func FeatureCollection(routes []model.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range routes {
		f := geojson.NewFeature(PointsToLineString(r.Coordinates))
		f.Properties["rank"] = i
		f.Properties["distance"] = r.Distance
		f.Properties["duration"] = r.Duration
		if r.Summary != "" {
			f.Properties["summary"] = r.Summary
		}
		fc.Append(f)
	}
	return fc
}
