// Package handler exposes the map page's HTTP API.
package handler

import (
	"net/http"

	"accident-map/dataset"
	"accident-map/mapview"
	"accident-map/report"
	"accident-map/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	planner   *service.Planner
	sessions  *mapview.Store
	accidents *dataset.Store
	reports   *report.Service
}

func New(planner *service.Planner, sessions *mapview.Store, accidents *dataset.Store, reports *report.Service) *Handler {
	return &Handler{
		planner:   planner,
		sessions:  sessions,
		accidents: accidents,
		reports:   reports,
	}
}

// Register mounts the page and the API on r. limit, when non-nil, guards
// every endpoint that reaches an external service.
func (h *Handler) Register(r *gin.Engine, staticDir string, limit gin.HandlerFunc) {
	r.Static("/static", staticDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/static/index.html")
	})

	guarded := []gin.HandlerFunc{}
	if limit != nil {
		guarded = append(guarded, limit)
	}

	// path used by the page for photo lookups
	r.GET("/fetch-photos", append(guarded, h.FetchPhotos)...)

	api := r.Group("/api", guarded...)
	{
		api.GET("/map/config", h.MapConfig)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.GET("/sessions/:id/route.geojson", h.RouteGeoJSON)
		api.DELETE("/sessions/:id/markers", h.ClearMarkers)
		api.POST("/sessions/:id/route", h.FindRoute)
		api.POST("/sessions/:id/select", h.SelectSuggestion)
		api.POST("/sessions/:id/click", h.RevealAddress)

		api.GET("/geocode/suggest", h.Suggest)
		api.GET("/geocode/reverse", h.Reverse)

		api.GET("/accidents", h.Accidents)
		api.GET("/accidents.geojson", h.AccidentsGeoJSON)

		api.GET("/pricing", h.Pricing)
		api.POST("/reports", h.SubmitReport)
	}
}
