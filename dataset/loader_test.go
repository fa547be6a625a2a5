package dataset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"accident-map/logger"
)

const sample = `[
	{"Latitude": 53.8008, "Longitude": -1.5491},
	{"Latitude": "53.81", "Longitude": "-1.56"},
	{"Latitude": "abc", "Longitude": -1.5},
	{"Latitude": null, "Longitude": -1.5},
	{"Longitude": -1.5},
	{"Latitude": 95.0, "Longitude": -1.5},
	{"Latitude": 53.8, "Longitude": 181},
	{"Latitude": "", "Longitude": -1.5},
	{"Latitude": 53.8008, "Longitude": -1.5491}
]`

func TestParseExcludesMalformedRecords(t *testing.T) {
	l := NewLoader(nil, logger.Discard())

	points, err := l.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 valid points, got %d: %v", len(points), points)
	}
	if points[1].Latitude != 53.81 || points[1].Longitude != -1.56 {
		t.Fatalf("expected numeric strings to be parsed, got %+v", points[1])
	}
	if points[0] != points[2] {
		t.Fatalf("expected duplicate coordinates to be kept, got %+v and %+v", points[0], points[2])
	}
}

func TestParseRejectsNonArray(t *testing.T) {
	l := NewLoader(nil, logger.Discard())

	if _, err := l.Parse([]byte(`{"Latitude": 1}`)); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	points, err := NewLoader(nil, logger.Discard()).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/static/data.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), logger.Discard())
	points, err := l.Load(context.Background(), srv.URL+"/static/data.json")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	if _, err := l.Load(context.Background(), srv.URL+"/missing.json"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestLoadStoreDegradesToEmpty(t *testing.T) {
	l := NewLoader(nil, logger.Discard())

	store := LoadStore(context.Background(), l, filepath.Join(t.TempDir(), "absent.json"), logger.Discard())
	if store.Len() != 0 || len(store.All()) != 0 {
		t.Fatalf("expected empty store, got %d points", store.Len())
	}
}

func TestFeatureCollection(t *testing.T) {
	l := NewLoader(nil, logger.Discard())
	points, _ := l.Parse([]byte(sample))

	raw, err := json.Marshal(FeatureCollection(points))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(raw, &fc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 3 {
		t.Fatalf("unexpected collection: %s", raw)
	}
	if c := fc.Features[0].Geometry.Coordinates; c[0] != -1.5491 || c[1] != 53.8008 {
		t.Fatalf("expected lon/lat order, got %v", c)
	}
}
