package model

// AccidentPoint is a recorded accident location. The JSON keys match the
// static dataset.
type AccidentPoint struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// Point returns the accident location as a Point.
func (a AccidentPoint) Point() Point {
	return Point{Lat: a.Latitude, Lng: a.Longitude}
}
