package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STATIC_DIR", "./static")
	t.Setenv("NOMINATIM_URL", "https://nominatim.example.org/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GetNominatimURL() != "https://nominatim.example.org" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GetNominatimURL())
	}
	if cfg.AccidentDataSource != "./static/data.json" {
		t.Fatalf("expected dataset under static dir, got %q", cfg.AccidentDataSource)
	}
	if cfg.GetGeocodeCacheTTL() != 24*time.Hour {
		t.Fatalf("expected 24h cache ttl, got %v", cfg.GetGeocodeCacheTTL())
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("HTTP_CLIENT_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("NOMINATIM_RPS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero nominatim rate")
	}
}

func TestLoadRejectsEmptyCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " , ")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CORS_ORIGINS") {
		t.Fatalf("expected CORS_ORIGINS error, got %v", err)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" http://a , ,http://b")
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
