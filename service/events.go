package service

import (
	"context"
	"fmt"

	"accident-map/algo"
	"accident-map/events"
	"accident-map/logger"
	"accident-map/mapview"
	"accident-map/model"
)

const (
	EventRouteFound  = "route.found"
	EventRouteServed = "route.served"
)

// RouteFound is published once the routing engine returned routes for a
// session's request. Generation ties it to the request that produced it.
type RouteFound struct {
	events.BaseEvent
	SessionID  string
	Generation uint64
	Routes     []model.Route
}

func (RouteFound) EventName() string {
	return EventRouteFound
}

// Primary is the route the accidents are matched against.
func (e RouteFound) Primary() model.Route {
	if len(e.Routes) == 0 {
		return model.Route{}
	}
	return e.Routes[0]
}

// AccidentSource provides the accident dataset.
type AccidentSource interface {
	All() []model.AccidentPoint
}

// ProximityHandler renders the accidents near a found route into the
// session that requested it.
type ProximityHandler struct {
	sessions       *mapview.Store
	accidents      AccidentSource
	searchRadiusKm float64
	bufferRadiusKm float64
	log            *logger.Logger
}

func NewProximityHandler(sessions *mapview.Store, accidents AccidentSource, surface mapview.Surface, log *logger.Logger) *ProximityHandler {
	return &ProximityHandler{
		sessions:       sessions,
		accidents:      accidents,
		searchRadiusKm: surface.SearchRadiusKm,
		bufferRadiusKm: surface.BufferRadiusKm,
		log:            log,
	}
}

func (h *ProximityHandler) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(RouteFound)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	session, ok := h.sessions.Get(e.SessionID)
	if !ok {
		return nil
	}

	nearby := algo.FindNearbyPoints(e.Primary().Coordinates, h.accidents.All(), h.searchRadiusKm)
	if !session.RenderRoute(e.Generation, e.Routes, nearby, h.bufferRadiusKm) {
		h.log.WithContext(ctx).Debug("dropped result of superseded route request", "session_id", e.SessionID)
		return nil
	}

	h.log.WithContext(ctx).Info("accidents near route",
		"session_id", e.SessionID,
		"route_points", len(e.Primary().Coordinates),
		"matched", len(nearby),
	)
	return nil
}

// RouteServed reports the outcome of a route request once it has been
// answered.
type RouteServed struct {
	events.BaseEvent
	SessionID string
	Found     bool
	Distance  float64 // metres
	Duration  float64 // seconds
	Accidents int
}

func (RouteServed) EventName() string {
	return EventRouteServed
}

// RouteLogHandler writes one log line per answered route request.
type RouteLogHandler struct {
	log *logger.Logger
}

func NewRouteLogHandler(log *logger.Logger) *RouteLogHandler {
	return &RouteLogHandler{log: log}
}

func (h *RouteLogHandler) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(RouteServed)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	h.log.WithContext(ctx).Info("route served",
		"session_id", e.SessionID,
		"found", e.Found,
		"distance_m", e.Distance,
		"duration_s", e.Duration,
		"accidents", e.Accidents,
	)
	return nil
}
