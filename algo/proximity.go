package algo

import (
	"accident-map/model"
	"accident-map/utils"
)

// NearbyPoint is an accident point matched against a route, with the index of
// the route point that matched it.
type NearbyPoint struct {
	Point      model.AccidentPoint `json:"point"`
	RouteIndex int                 `json:"route_index"`
	Distance   float64             `json:"distance"` // metres to that route point
}

// FindNearbyPoints returns the accident points lying within radiusKm of at
// least one route point. Each point is checked against the route in order and
// the scan stops at the first route point within range, so the result says
// nothing about which part of the route is closest. Duplicate points are kept.
func FindNearbyPoints(route []model.RoutePoint, points []model.AccidentPoint, radiusKm float64) []model.AccidentPoint {
	matches := Match(route, points, radiusKm)
	if len(matches) == 0 {
		return nil
	}

	nearby := make([]model.AccidentPoint, 0, len(matches))
	for _, m := range matches {
		nearby = append(nearby, m.Point)
	}
	return nearby
}

// Match is FindNearbyPoints keeping the first matching route point for each
// accident point.
func Match(route []model.RoutePoint, points []model.AccidentPoint, radiusKm float64) []NearbyPoint {
	if len(route) == 0 || len(points) == 0 || radiusKm < 0 {
		return nil
	}

	radiusInMeters := utils.KilometersToMeters(radiusKm)

	var matches []NearbyPoint
	for _, point := range points {
		p := point.Point()
		for i, routePoint := range route {
			if dist := utils.HaversineDistance(p, routePoint); dist <= radiusInMeters {
				matches = append(matches, NearbyPoint{Point: point, RouteIndex: i, Distance: dist})
				break
			}
		}
	}
	return matches
}
