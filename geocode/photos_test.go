package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"accident-map/logger"
)

type fakeDetailer struct {
	details PlaceDetails
	err     error
}

func (f fakeDetailer) Details(context.Context, int64) (PlaceDetails, error) {
	return f.details, f.err
}

func TestPhotosLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("prop") != "images" || q.Get("titles") != "Category:Leeds Town Hall" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Category:Leeds Town Hall","images":[{"title":"File:Town Hall.jpg"},{"title":"File:Clock.jpg"}]}}}}`))
	}))
	defer srv.Close()

	details := PlaceDetails{LocalName: "Leeds Town Hall", ExtraTags: Tags{"wikimedia_commons": "Category:Leeds Town Hall"}}
	p := NewPhotos(testConfig{url: srv.URL}, fakeDetailer{details: details}, logger.Discard())
	p.apiURL = srv.URL

	resp, err := p.Lookup(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	titles := resp.Titles()
	if len(titles) != 2 || titles[0] != "File:Town Hall.jpg" {
		t.Fatalf("unexpected titles %v", titles)
	}
}

func TestPhotosLookupWithoutTitle(t *testing.T) {
	p := NewPhotos(testConfig{url: "http://127.0.0.1:0"}, fakeDetailer{}, logger.Discard())

	resp, err := p.Lookup(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(resp.Titles()) != 0 {
		t.Fatalf("expected no titles, got %v", resp.Titles())
	}
}

func TestPhotosLookupDetailsFailure(t *testing.T) {
	p := NewPhotos(testConfig{url: "http://127.0.0.1:0"}, fakeDetailer{err: errors.New("boom")}, logger.Discard())

	if _, err := p.Lookup(context.Background(), 1); err == nil {
		t.Fatal("expected error when place details fail")
	}
}

func TestImageInfoURL(t *testing.T) {
	p := NewPhotos(testConfig{url: "https://commons.example.org"}, fakeDetailer{}, logger.Discard())

	got := p.ImageInfoURL("File:Town Hall.jpg")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid url %q: %v", got, err)
	}
	if !strings.HasPrefix(got, "https://commons.example.org/w/api.php?") {
		t.Fatalf("unexpected base in %q", got)
	}
	if u.Query().Get("titles") != "File:Town Hall.jpg" || u.Query().Get("iiprop") != "url" {
		t.Fatalf("unexpected query %v", u.Query())
	}
}

func TestTagsAcceptEmptyArray(t *testing.T) {
	var d PlaceDetails
	if err := json.Unmarshal([]byte(`{"place_id":7,"localname":"Kirkgate","names":[],"extratags":{"wikipedia":"en:Kirkgate Market"}}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(d.Names) != 0 || d.ExtraTags["wikipedia"] != "en:Kirkgate Market" {
		t.Fatalf("unexpected details %+v", d)
	}
	if CommonsTitle(d) != "Kirkgate" {
		t.Fatalf("expected local name fallback, got %q", CommonsTitle(d))
	}
}
