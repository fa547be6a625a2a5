package model

// MarkerKind identifies what a marker on the map stands for.
type MarkerKind string

const (
	MarkerSource      MarkerKind = "source"
	MarkerDestination MarkerKind = "destination"
	MarkerAccident    MarkerKind = "accident"
	MarkerPlace       MarkerKind = "place"
)

// Marker is a renderable annotation at a coordinate. Accident markers carry
// the radius of the buffer circle drawn around them.
type Marker struct {
	ID                 string     `json:"id"`
	Kind               MarkerKind `json:"kind"`
	Lat                float64    `json:"lat"`
	Lng                float64    `json:"lng"`
	Popup              string     `json:"popup,omitempty"`
	BufferRadiusMeters float64    `json:"buffer_radius_m,omitempty"`
}
