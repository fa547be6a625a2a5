package model

// Route is one candidate path returned by the routing engine.
type Route struct {
	Coordinates []RoutePoint `json:"coordinates"`
	Distance    float64      `json:"distance"` // metres
	Duration    float64      `json:"duration"` // seconds
	Summary     string       `json:"summary,omitempty"`
}

// LineStyle is how the route polyline is drawn.
type LineStyle struct {
	Color   string  `json:"color" yaml:"color"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
	Weight  int     `json:"weight" yaml:"weight"`
}
