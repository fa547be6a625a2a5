package handler

import (
	"errors"
	"io"
	"net/http"

	"accident-map/apperr"
	"accident-map/model"
	"accident-map/routing"
	"accident-map/service"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type SessionRequest struct {
	ID string `json:"id"`
}

type RouteRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type SelectRequest struct {
	Field     service.Field   `json:"field" binding:"required,oneof=source destination"`
	Candidate model.Candidate `json:"candidate"`
}

type ClickRequest struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" binding:"required,longitude"`
}

// MapConfig handles GET /api/map/config.
func (h *Handler) MapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Surface())
}

// CreateSession handles POST /api/sessions. A body naming a live session
// resumes it with 200; otherwise a new session is answered with 201.
func (h *Handler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s := h.sessions.GetOrCreate(req.ID)
	status := http.StatusCreated
	if s.ID() == req.ID {
		status = http.StatusOK
	}
	c.JSON(status, s.Snapshot())
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		HandleError(c, apperr.NotFound("session not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession handles GET /api/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleError(c, apperr.NotFound("session not found"))
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// RouteGeoJSON handles GET /api/sessions/:id/route.geojson. It returns the
// session's routes as lines followed by its accident markers as points.
func (h *Handler) RouteGeoJSON(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleError(c, apperr.NotFound("session not found"))
		return
	}
	v := s.Snapshot()

	fc := routing.FeatureCollection(v.Routes)
	for _, m := range v.Accidents {
		f := geojson.NewFeature(orb.Point{m.Lng, m.Lat})
		f.Properties["buffer_radius_m"] = m.BufferRadiusMeters
		fc.Append(f)
	}
	raw, err := fc.MarshalJSON()
	if HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "application/geo+json", raw)
}

// ClearMarkers handles DELETE /api/sessions/:id/markers.
func (h *Handler) ClearMarkers(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleError(c, apperr.NotFound("session not found"))
		return
	}
	s.Reset()
	c.JSON(http.StatusOK, s.Snapshot())
}

// FindRoute handles POST /api/sessions/:id/route.
func (h *Handler) FindRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.planner.FindRoute(c.Request.Context(), c.Param("id"), req.Source, req.Destination)
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, res)
}

// SelectSuggestion handles POST /api/sessions/:id/select.
func (h *Handler) SelectSuggestion(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "field must be source or destination")
		return
	}

	view, err := h.planner.SelectSuggestion(c.Request.Context(), c.Param("id"), req.Field, req.Candidate)
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, view)
}

// RevealAddress handles POST /api/sessions/:id/click.
func (h *Handler) RevealAddress(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	reveal, err := h.planner.RevealAddress(c.Request.Context(), c.Param("id"), model.Point{Lat: *req.Lat, Lng: *req.Lng})
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, reveal)
}
