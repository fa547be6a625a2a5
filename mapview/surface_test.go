package mapview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSurfaceMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSurface(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSurface returned error: %v", err)
	}
	if s.Zoom != 12 || s.MaxZoom != 20 || s.SuggestionZoom != 13 {
		t.Fatalf("unexpected zoom levels: %+v", s)
	}
	if s.Center.Lat != 53.8008 || s.Center.Lng != -1.5491 {
		t.Fatalf("unexpected center: %+v", s.Center)
	}
	if len(s.BaseLayers) != 3 || s.BaseLayers[0].Name != "Standard" {
		t.Fatalf("unexpected base layers: %+v", s.BaseLayers)
	}
}

func TestLoadSurfaceOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	body := []byte("zoom: 10\nsearch_radius_km: 1.5\nroute_line:\n  color: green\n  opacity: 0.5\n  weight: 4\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSurface(path)
	if err != nil {
		t.Fatalf("LoadSurface returned error: %v", err)
	}
	if s.Zoom != 10 || s.SearchRadiusKm != 1.5 {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.RouteLine.Color != "green" || s.RouteLine.Weight != 4 {
		t.Fatalf("unexpected line style: %+v", s.RouteLine)
	}
	if s.BufferRadiusKm != 0.19 {
		t.Fatalf("expected default buffer radius kept, got %v", s.BufferRadiusKm)
	}
}

func TestLoadSurfaceRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":        "zoom: [",
		"zoom over max":   "zoom: 25\n",
		"bad center":      "center:\n  lat: 95\n  lng: 0\n",
		"negative radius": "search_radius_km: -1\n",
		"no layers":       "base_layers: []\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "map.yaml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSurface(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
