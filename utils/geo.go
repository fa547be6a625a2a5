package utils

import (
	"math"

	"accident-map/model"
)

// EarthRadius is the mean Earth radius in metres, the same value the page's
// map library uses for its distance measurements.
const EarthRadius = 6371000.0

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// KilometersToMeters converts a distance in kilometres to metres.
func KilometersToMeters(km float64) float64 {
	return km * 1000
}

func hav(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

// HaversineDistance returns the great-circle distance between two points in
// metres.
func HaversineDistance(p1, p2 model.Point) float64 {
	lat1, lat2 := DegreesToRadians(p1.Lat), DegreesToRadians(p2.Lat)
	h := hav(lat2-lat1) + math.Cos(lat1)*math.Cos(lat2)*hav(DegreesToRadians(p2.Lng-p1.Lng))
	// rounding can push h just past 1 for antipodal points
	return 2 * EarthRadius * math.Asin(math.Sqrt(math.Min(1, h)))
}
