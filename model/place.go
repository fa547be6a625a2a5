package model

// Candidate is one geocoding suggestion, in the lookup service's wire format
// (coordinates are strings).
type Candidate struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Place is a reverse geocoding result.
type Place struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
}
