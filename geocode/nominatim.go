// Package geocode talks to the Nominatim lookup service and the Wikimedia
// Commons photo API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"accident-map/cache"
	"accident-map/config"
	"accident-map/logger"
	"accident-map/model"

	"golang.org/x/time/rate"
)

const serviceName = "nominatim"

// Nominatim is a rate limited, cached client for the Nominatim API.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	cache     cache.Cache
	cacheTTL  time.Duration
	log       *logger.Logger
}

// NewNominatim creates a client. c may be nil to disable caching.
func NewNominatim(cfg config.NominatimConfig, c cache.Cache, cacheTTL time.Duration, log *logger.Logger) *Nominatim {
	return &Nominatim{
		baseURL:   strings.TrimRight(cfg.GetNominatimURL(), "/"),
		userAgent: cfg.GetNominatimUserAgent(),
		client:    &http.Client{Timeout: cfg.GetHTTPClientTimeout()},
		limiter:   rate.NewLimiter(rate.Limit(cfg.GetNominatimRPS()), 1),
		cache:     c,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// Search returns candidate places for a free-text query. A blank query
// returns no candidates without calling the service.
func (n *Nominatim) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := "search:" + strings.ToLower(query)
	var candidates []model.Candidate
	if cache.GetJSON(ctx, n.cache, key, &candidates) {
		return candidates, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")

	if err := n.get(ctx, "/search", params, &candidates); err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []model.Candidate{}
	}

	cache.SetJSON(ctx, n.cache, key, candidates, n.cacheTTL)
	return candidates, nil
}

// Geocode resolves an address to the coordinates of the first candidate.
// Every failure is logged and reported as ok == false.
func (n *Nominatim) Geocode(ctx context.Context, address string) (model.Point, bool) {
	log := n.log.WithContext(ctx)

	candidates, err := n.Search(ctx, address)
	if err != nil {
		log.UpstreamError(serviceName, "geocode", err)
		return model.Point{}, false
	}
	if len(candidates) == 0 {
		log.Info("geocoding response did not contain valid data", "address", address)
		return model.Point{}, false
	}

	p, err := ParseCandidate(candidates[0])
	if err != nil {
		log.Warn("geocoding candidate has invalid coordinates", "address", address, "error", err)
		return model.Point{}, false
	}
	return p, true
}

// ParseCandidate converts a candidate's string coordinates to a Point.
func ParseCandidate(c model.Candidate) (model.Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Lat), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid latitude %q", c.Lat)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(c.Lon), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid longitude %q", c.Lon)
	}
	p := model.Point{Lat: lat, Lng: lon}
	if !p.Valid() {
		return model.Point{}, fmt.Errorf("coordinates out of range: %v,%v", lat, lon)
	}
	return p, nil
}

// Reverse returns the address of the place at p.
func (n *Nominatim) Reverse(ctx context.Context, p model.Point) (model.Place, error) {
	key := fmt.Sprintf("reverse:%.6f,%.6f", p.Lat, p.Lng)
	var place model.Place
	if cache.GetJSON(ctx, n.cache, key, &place) {
		return place, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	var resp reverseResponse
	if err := n.get(ctx, "/reverse", params, &resp); err != nil {
		return model.Place{}, err
	}
	if resp.Error != "" {
		return model.Place{}, fmt.Errorf("reverse geocode: %s", resp.Error)
	}

	place = model.Place{PlaceID: resp.PlaceID, DisplayName: resp.DisplayName}
	cache.SetJSON(ctx, n.cache, key, place, n.cacheTTL)
	return place, nil
}

// Details returns the stored details of a place.
func (n *Nominatim) Details(ctx context.Context, placeID int64) (PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", strconv.FormatInt(placeID, 10))
	params.Set("format", "json")

	var details PlaceDetails
	if err := n.get(ctx, "/details", params, &details); err != nil {
		return PlaceDetails{}, err
	}
	return details, nil
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values, dst any) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("nominatim rate limit: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", n.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim upstream error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode nominatim payload: %w", err)
	}
	return nil
}
