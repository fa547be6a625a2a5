package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"accident-map/config"
	"accident-map/logger"
)

// PlaceDetailer resolves a place id to its stored details.
type PlaceDetailer interface {
	Details(ctx context.Context, placeID int64) (PlaceDetails, error)
}

// Photos looks up Wikimedia Commons images for a geocoded place.
type Photos struct {
	apiURL string
	places PlaceDetailer
	client *http.Client
	log    *logger.Logger
}

func NewPhotos(cfg config.PhotoConfig, places PlaceDetailer, log *logger.Logger) *Photos {
	return &Photos{
		apiURL: cfg.GetWikimediaURL(),
		places: places,
		client: &http.Client{Timeout: cfg.GetHTTPClientTimeout()},
		log:    log,
	}
}

// Lookup returns the images attached to the Commons page of a place.
func (p *Photos) Lookup(ctx context.Context, placeID int64) (*PhotoResponse, error) {
	details, err := p.places.Details(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("place details: %w", err)
	}

	title := CommonsTitle(details)
	if title == "" {
		return &PhotoResponse{}, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "images")
	params.Set("titles", title)
	params.Set("imlimit", "20")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "accident-map/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikimedia request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikimedia upstream error: %d", resp.StatusCode)
	}

	var out PhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode wikimedia payload: %w", err)
	}
	return &out, nil
}

// CommonsTitle picks the Commons page to search: the place's
// wikimedia_commons tag when present, otherwise its local name.
func CommonsTitle(d PlaceDetails) string {
	if t := strings.TrimSpace(d.ExtraTags["wikimedia_commons"]); t != "" {
		return t
	}
	if d.LocalName != "" {
		return d.LocalName
	}
	return d.Names["name"]
}

// Titles returns the image titles of the first page in the response.
func (r *PhotoResponse) Titles() []string {
	if r == nil || r.Query == nil || len(r.Query.Pages) == 0 {
		return nil
	}

	keys := make([]string, 0, len(r.Query.Pages))
	for k := range r.Query.Pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	page := r.Query.Pages[keys[0]]
	titles := make([]string, 0, len(page.Images))
	for _, img := range page.Images {
		titles = append(titles, img.Title)
	}
	return titles
}

// ImageInfoURL returns the Commons API URL describing an image file.
func (p *Photos) ImageInfoURL(title string) string {
	title = strings.TrimPrefix(title, "File:")

	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", "File:"+title)
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url")
	params.Set("format", "json")
	return p.apiURL + "?" + params.Encode()
}
