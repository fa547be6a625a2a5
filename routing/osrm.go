// Package routing requests routes from an OSRM routing engine.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"accident-map/apperr"
	"accident-map/config"
	"accident-map/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// osrmResponse mirrors the OSRM route service payload requested with
// geometries=geojson.
type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64          `json:"distance"` // metres
	Duration float64          `json:"duration"` // seconds
	Geometry geojson.Geometry `json:"geometry"`
	Legs     []struct {
		Summary string `json:"summary"`
	} `json:"legs"`
}

// OSRM is a client for the OSRM /route service.
type OSRM struct {
	baseURL string
	profile string
	client  *http.Client
}

func NewOSRM(cfg config.RoutingConfig) *OSRM {
	return &OSRM{
		baseURL: strings.TrimRight(cfg.GetOSRMURL(), "/"),
		profile: cfg.GetOSRMProfile(),
		client:  &http.Client{Timeout: cfg.GetHTTPClientTimeout()},
	}
}

// Route returns the candidate routes through the waypoints, best first.
func (o *OSRM) Route(ctx context.Context, waypoints []model.Point) ([]model.Route, error) {
	if len(waypoints) < 2 {
		return nil, apperr.Validation("at least two waypoints are required").WithOp("routing.Route")
	}

	coords := make([]string, 0, len(waypoints))
	for _, p := range waypoints {
		// OSRM expects lng,lat
		coords = append(coords, strconv.FormatFloat(p.Lng, 'f', 6, 64)+","+strconv.FormatFloat(p.Lat, 'f', 6, 64))
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson&alternatives=true&steps=false",
		o.baseURL, o.profile, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OSRM API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var osrmResp osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&osrmResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("OSRM API returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode OSRM response: %w", err)
	}

	if osrmResp.Code != "Ok" {
		return nil, fmt.Errorf("OSRM returned %s: %s", osrmResp.Code, osrmResp.Message)
	}
	if len(osrmResp.Routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	routes := make([]model.Route, 0, len(osrmResp.Routes))
	for _, r := range osrmResp.Routes {
		line, ok := r.Geometry.Coordinates.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("unexpected route geometry %s", r.Geometry.Type)
		}
		routes = append(routes, model.Route{
			Coordinates: LineStringToPoints(line),
			Distance:    r.Distance,
			Duration:    r.Duration,
			Summary:     summary(r),
		})
	}
	return routes, nil
}

// LineStringToPoints converts a GeoJSON line (lng, lat order) to route points.
func LineStringToPoints(line orb.LineString) []model.RoutePoint {
	points := make([]model.RoutePoint, 0, len(line))
	for _, p := range line {
		points = append(points, model.RoutePoint{Lat: p.Lat(), Lng: p.Lon()})
	}
	return points
}

// PointsToLineString is the inverse of LineStringToPoints.
func PointsToLineString(points []model.RoutePoint) orb.LineString {
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, orb.Point{p.Lng, p.Lat})
	}
	return line
}

func summary(r osrmRoute) string {
	parts := make([]string, 0, len(r.Legs))
	for _, leg := range r.Legs {
		if leg.Summary != "" {
			parts = append(parts, leg.Summary)
		}
	}
	return strings.Join(parts, "; ")
}
