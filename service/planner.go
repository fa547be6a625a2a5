// Package service holds the map page's control flow: resolving endpoints,
// requesting routes and revealing addresses.
package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"accident-map/apperr"
	"accident-map/events"
	"accident-map/geocode"
	"accident-map/logger"
	"accident-map/mapview"
	"accident-map/model"

	"golang.org/x/sync/errgroup"
)

// Geocoder resolves addresses and coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
	Geocode(ctx context.Context, address string) (model.Point, bool)
	Reverse(ctx context.Context, p model.Point) (model.Place, error)
}

// Router computes driving routes between waypoints.
type Router interface {
	Route(ctx context.Context, waypoints []model.Point) ([]model.Route, error)
}

// PhotoFinder looks up photos of a place.
type PhotoFinder interface {
	Lookup(ctx context.Context, placeID int64) (*geocode.PhotoResponse, error)
	ImageInfoURL(title string) string
}

// Field names an endpoint input of the route form.
type Field string

const (
	FieldSource      Field = "source"
	FieldDestination Field = "destination"
)

func (f Field) markerKind() (model.MarkerKind, bool) {
	switch f {
	case FieldSource:
		return model.MarkerSource, true
	case FieldDestination:
		return model.MarkerDestination, true
	}
	return "", false
}

// RouteResult is the outcome of a route request. Found is false when an
// endpoint could not be resolved or no route was returned.
type RouteResult struct {
	Found bool         `json:"found"`
	View  mapview.View `json:"view"`
}

// Reveal is the outcome of a map click.
type Reveal struct {
	Found   bool          `json:"found"`
	Address string        `json:"address,omitempty"`
	Images  []string      `json:"images,omitempty"`
	Popup   string        `json:"popup,omitempty"`
	Marker  *model.Marker `json:"marker,omitempty"`
}

type Planner struct {
	geocoder Geocoder
	router   Router
	photos   PhotoFinder
	sessions *mapview.Store
	bus      events.Bus
	surface  mapview.Surface
	log      *logger.Logger
}

func NewPlanner(geocoder Geocoder, router Router, photos PhotoFinder, sessions *mapview.Store, bus events.Bus, log *logger.Logger) *Planner {
	return &Planner{
		geocoder: geocoder,
		router:   router,
		photos:   photos,
		sessions: sessions,
		bus:      bus,
		surface:  sessions.Surface(),
		log:      log,
	}
}

func (p *Planner) session(id string) (*mapview.Session, error) {
	s, ok := p.sessions.Get(id)
	if !ok {
		return nil, apperr.NotFound("session not found")
	}
	return s, nil
}

// FindRoute geocodes both endpoints, clears the session and, when both
// resolved, requests the route. The RouteFound subscribers commit the routes
// and their accident markers before FindRoute returns.
func (p *Planner) FindRoute(ctx context.Context, sessionID, source, destination string) (RouteResult, error) {
	session, err := p.session(sessionID)
	if err != nil {
		return RouteResult{}, err
	}
	log := p.log.WithContext(ctx)

	var (
		src, dst     model.Point
		srcOK, dstOK bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		src, srcOK = p.geocoder.Geocode(gctx, source)
		return nil
	})
	g.Go(func() error {
		dst, dstOK = p.geocoder.Geocode(gctx, destination)
		return nil
	})
	if err := g.Wait(); err != nil {
		return RouteResult{}, err
	}

	gen := session.Clear()

	if !srcOK || !dstOK {
		log.Info("route request skipped, endpoint not resolved", "session_id", sessionID, "source_ok", srcOK, "destination_ok", dstOK)
		return p.served(ctx, session, false), nil
	}

	for _, ep := range []struct {
		kind  model.MarkerKind
		at    model.Point
		label string
	}{
		{model.MarkerSource, src, source},
		{model.MarkerDestination, dst, destination},
	} {
		current, err := session.SetEndpoint(gen, ep.kind, ep.at, ep.label)
		if err != nil {
			return RouteResult{}, err
		}
		if !current {
			return RouteResult{View: session.Snapshot()}, nil
		}
	}

	routes, err := p.router.Route(ctx, []model.Point{src, dst})
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			return RouteResult{}, err
		}
		log.UpstreamError("osrm", "route", err)
		return p.served(ctx, session, false), nil
	}

	event := RouteFound{
		BaseEvent:  events.NewBaseEvent(),
		SessionID:  sessionID,
		Generation: gen,
		Routes:     routes,
	}
	if err := p.bus.PublishSync(ctx, event); err != nil {
		log.Error("route found handlers failed", "session_id", sessionID, "error", err)
		session.RenderRoute(gen, routes, nil, 0)
	}

	return p.served(ctx, session, session.Generation() == gen), nil
}

// served snapshots the session and announces the outcome to the
// asynchronous RouteServed subscribers.
func (p *Planner) served(ctx context.Context, session *mapview.Session, found bool) RouteResult {
	view := session.Snapshot()
	if found && len(view.Routes) == 0 {
		found = false
	}

	e := RouteServed{
		BaseEvent: events.NewBaseEvent(),
		SessionID: session.ID(),
		Found:     found,
		Accidents: len(view.Accidents),
	}
	if found {
		e.Distance = view.Routes[0].Distance
		e.Duration = view.Routes[0].Duration
	}
	p.bus.Publish(ctx, e)

	return RouteResult{Found: found, View: view}
}

// Suggest returns the suggestion list for a partially typed address.
// Lookup failures yield an empty list.
func (p *Planner) Suggest(ctx context.Context, query string) []model.Candidate {
	candidates, err := p.geocoder.Search(ctx, query)
	if err != nil {
		p.log.WithContext(ctx).UpstreamError("nominatim", "suggest", err)
		return []model.Candidate{}
	}
	if candidates == nil {
		return []model.Candidate{}
	}
	return candidates
}

// SelectSuggestion places the marker for field at the chosen candidate and
// centres the view on it.
func (p *Planner) SelectSuggestion(ctx context.Context, sessionID string, field Field, c model.Candidate) (mapview.View, error) {
	kind, ok := field.markerKind()
	if !ok {
		return mapview.View{}, apperr.Validation(fmt.Sprintf("unknown field %q", field))
	}
	point, err := geocode.ParseCandidate(c)
	if err != nil {
		return mapview.View{}, apperr.Wrap(apperr.KindValidation, "invalid candidate", err)
	}
	session, err := p.session(sessionID)
	if err != nil {
		return mapview.View{}, err
	}

	if _, err := session.SetEndpoint(session.Generation(), kind, point, c.DisplayName); err != nil {
		return mapview.View{}, err
	}
	session.SetView(point, p.surface.SuggestionZoom)

	p.log.WithContext(ctx).Debug("suggestion selected", "session_id", sessionID, "field", string(field))
	return session.Snapshot(), nil
}

// RevealAddress reverse geocodes a clicked point. When the place has photos
// a marker listing them is added to the session; otherwise only the address
// is returned. Failures yield a result with Found == false.
func (p *Planner) RevealAddress(ctx context.Context, sessionID string, point model.Point) (Reveal, error) {
	if !point.Valid() {
		return Reveal{}, apperr.Validation("coordinates out of range")
	}
	session, err := p.session(sessionID)
	if err != nil {
		return Reveal{}, err
	}
	log := p.log.WithContext(ctx)

	place, err := p.geocoder.Reverse(ctx, point)
	if err != nil {
		log.UpstreamError("nominatim", "reverse", err)
		return Reveal{}, nil
	}

	var titles []string
	photos, err := p.photos.Lookup(ctx, place.PlaceID)
	if err != nil {
		log.UpstreamError("wikimedia", "photos", err)
	} else {
		titles = photos.Titles()
	}

	reveal := Reveal{Found: true, Address: place.DisplayName}
	if len(titles) == 0 {
		reveal.Popup = html.EscapeString(place.DisplayName)
		return reveal, nil
	}

	var popup strings.Builder
	fmt.Fprintf(&popup, "<b>%s</b><br>", html.EscapeString(place.DisplayName))
	for _, t := range titles {
		u := p.photos.ImageInfoURL(t)
		reveal.Images = append(reveal.Images, u)
		fmt.Fprintf(&popup, `<img src="%s" alt="Photo" width="200"><br>`, html.EscapeString(u))
	}
	reveal.Popup = popup.String()

	marker := session.AddPlace(model.Marker{Lat: point.Lat, Lng: point.Lng, Popup: reveal.Popup})
	reveal.Marker = &marker

	return reveal, nil
}

// Reverse returns the address at a point.
func (p *Planner) Reverse(ctx context.Context, point model.Point) (model.Place, error) {
	if !point.Valid() {
		return model.Place{}, apperr.Validation("coordinates out of range")
	}
	place, err := p.geocoder.Reverse(ctx, point)
	if err != nil {
		p.log.WithContext(ctx).UpstreamError("nominatim", "reverse", err)
		return model.Place{}, apperr.Wrap(apperr.KindUnavailable, "reverse geocoding failed", err)
	}
	return place, nil
}

// FetchPhotos returns the raw photo listing of a place.
func (p *Planner) FetchPhotos(ctx context.Context, placeID int64) (*geocode.PhotoResponse, error) {
	if placeID <= 0 {
		return nil, apperr.Validation("placeId must be positive")
	}
	resp, err := p.photos.Lookup(ctx, placeID)
	if err != nil {
		p.log.WithContext(ctx).UpstreamError("wikimedia", "photos", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "photo lookup failed", err)
	}
	return resp, nil
}
