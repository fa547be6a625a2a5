// Package mapview holds the map surface configuration and the per-user view
// state (markers, route, buffer circles) rendered by the page.
package mapview

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"accident-map/model"

	"gopkg.in/yaml.v3"
)

// BaseLayer is one entry of the base-layer switcher.
type BaseLayer struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Attribution string `json:"attribution" yaml:"attribution"`
}

// CircleStyle is how buffer circles around flagged points are drawn.
type CircleStyle struct {
	Color       string  `json:"color" yaml:"color"`
	FillColor   string  `json:"fill_color" yaml:"fill_color"`
	FillOpacity float64 `json:"fill_opacity" yaml:"fill_opacity"`
}

type Center struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Surface is the map configuration sent to the page.
type Surface struct {
	Center         Center          `json:"center" yaml:"center"`
	Zoom           int             `json:"zoom" yaml:"zoom"`
	MaxZoom        int             `json:"max_zoom" yaml:"max_zoom"`
	SuggestionZoom int             `json:"suggestion_zoom" yaml:"suggestion_zoom"`
	SearchRadiusKm float64         `json:"search_radius_km" yaml:"search_radius_km"`
	BufferRadiusKm float64         `json:"buffer_radius_km" yaml:"buffer_radius_km"`
	BaseLayers     []BaseLayer     `json:"base_layers" yaml:"base_layers"`
	RouteLine      model.LineStyle `json:"route_line" yaml:"route_line"`
	BufferStyle    CircleStyle     `json:"buffer_style" yaml:"buffer_style"`
}

// DefaultSurface is the map centred on Leeds.
func DefaultSurface() Surface {
	return Surface{
		Center:         Center{Lat: 53.8008, Lng: -1.5491},
		Zoom:           12,
		MaxZoom:        20,
		SuggestionZoom: 13,
		SearchRadiusKm: 0.5,
		BufferRadiusKm: 0.19,
		BaseLayers: []BaseLayer{
			{Name: "Standard", URL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", Attribution: "&copy; <a href='http://openstreetmap.org'>OpenStreetMap</a> contributors"},
			{Name: "Terrain", URL: "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png", Attribution: "Terrain layer"},
			{Name: "Traffic", URL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", Attribution: "Traffic layer"},
		},
		RouteLine:   model.LineStyle{Color: "blue", Opacity: 0.8, Weight: 8},
		BufferStyle: CircleStyle{Color: "red", FillColor: "#f03", FillOpacity: 0.5},
	}
}

// LoadSurface reads the map configuration from a YAML file. Fields missing
// from the file keep their defaults; a missing file yields the defaults.
func LoadSurface(path string) (Surface, error) {
	s := DefaultSurface()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return Surface{}, fmt.Errorf("read map config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Surface{}, fmt.Errorf("parse map config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Surface{}, err
	}
	return s, nil
}

// Validate checks the configuration for values the page cannot render.
func (s Surface) Validate() error {
	if !(model.Point{Lat: s.Center.Lat, Lng: s.Center.Lng}).Valid() {
		return fmt.Errorf("map config: invalid center %v,%v", s.Center.Lat, s.Center.Lng)
	}
	if s.Zoom < 0 || s.Zoom > s.MaxZoom {
		return fmt.Errorf("map config: zoom %d outside 0..%d", s.Zoom, s.MaxZoom)
	}
	if s.SearchRadiusKm < 0 || s.BufferRadiusKm < 0 {
		return fmt.Errorf("map config: radii must not be negative")
	}
	if len(s.BaseLayers) == 0 {
		return fmt.Errorf("map config: at least one base layer is required")
	}
	return nil
}
