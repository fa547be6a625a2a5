package mapview

import (
	"fmt"
	"html"
	"sync"
	"time"

	"accident-map/model"
	"accident-map/utils"

	"github.com/google/uuid"
)

// View is a consistent snapshot of a session.
type View struct {
	SessionID   string         `json:"session_id"`
	Center      model.Point    `json:"center"`
	Zoom        int            `json:"zoom"`
	Source      *model.Marker  `json:"source,omitempty"`
	Destination *model.Marker  `json:"destination,omitempty"`
	Routes      []model.Route  `json:"routes"`
	Accidents   []model.Marker `json:"accidents"`
	Places      []model.Marker `json:"places"`
}

// Session is the map state of one page. Every method takes the session lock,
// so a snapshot never sees a half-replaced marker set.
type Session struct {
	id string

	mu          sync.RWMutex
	center      model.Point
	zoom        int
	source      *model.Marker
	destination *model.Marker
	routes      []model.Route
	accidents   []model.Marker
	places      []model.Marker
	generation  uint64
	lastUsed    time.Time
}

func newSession(id string, surface Surface, now time.Time) *Session {
	return &Session{
		id:       id,
		center:   model.Point{Lat: surface.Center.Lat, Lng: surface.Center.Lng},
		zoom:     surface.Zoom,
		lastUsed: now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Clear removes the route, the endpoint markers and the accident markers.
// Place markers from map clicks are kept. The returned generation identifies
// the route request that follows; results carrying an older generation are
// dropped by SetEndpoint and RenderRoute.
func (s *Session) Clear() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return s.generation
}

// Reset is Clear plus removal of place markers.
func (s *Session) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.places = nil
	return s.generation
}

func (s *Session) clearLocked() {
	s.source = nil
	s.destination = nil
	s.routes = nil
	s.accidents = nil
	s.generation++
}

// Generation returns the generation of the latest Clear.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SetEndpoint places the source or destination marker for request gen,
// replacing the previous one for that kind. The label is shown as text. It
// reports false and changes nothing when gen is stale.
func (s *Session) SetEndpoint(gen uint64, kind model.MarkerKind, p model.Point, label string) (bool, error) {
	if kind != model.MarkerSource && kind != model.MarkerDestination {
		return false, fmt.Errorf("marker kind %q is not an endpoint", kind)
	}
	m := &model.Marker{ID: uuid.NewString(), Kind: kind, Lat: p.Lat, Lng: p.Lng, Popup: html.EscapeString(label)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false, nil
	}
	if kind == model.MarkerSource {
		s.source = m
	} else {
		s.destination = m
	}
	return true, nil
}

// SetView moves the map.
func (s *Session) SetView(center model.Point, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
	s.zoom = zoom
}

// RenderRoute stores the routes of request gen, best first, together with one
// accident marker and buffer circle per point. Both are replaced under one
// lock so a snapshot never shows a route without its accidents. It reports
// false and changes nothing when gen is stale.
func (s *Session) RenderRoute(gen uint64, routes []model.Route, accidents []model.AccidentPoint, bufferRadiusKm float64) bool {
	markers := make([]model.Marker, 0, len(accidents))
	for _, p := range accidents {
		markers = append(markers, model.Marker{
			ID:                 uuid.NewString(),
			Kind:               model.MarkerAccident,
			Lat:                p.Latitude,
			Lng:                p.Longitude,
			Popup:              fmt.Sprintf("<b>Accident Reference:</b><br>Latitude: %v, Longitude: %v", p.Latitude, p.Longitude),
			BufferRadiusMeters: utils.KilometersToMeters(bufferRadiusKm),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.routes = routes
	s.accidents = markers
	return true
}

// AddPlace adds a marker revealed by a map click and returns it as stored.
func (s *Session) AddPlace(m model.Marker) model.Marker {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Kind = model.MarkerPlace

	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = append(s.places, m)
	return m
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{
		SessionID: s.id,
		Center:    s.center,
		Zoom:      s.zoom,
		Routes:    append([]model.Route{}, s.routes...),
		Accidents: append([]model.Marker{}, s.accidents...),
		Places:    append([]model.Marker{}, s.places...),
	}
	if s.source != nil {
		src := *s.source
		v.Source = &src
	}
	if s.destination != nil {
		dst := *s.destination
		v.Destination = &dst
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}
