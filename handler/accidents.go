package handler

import (
	"net/http"

	"accident-map/dataset"
	"accident-map/model"

	"github.com/gin-gonic/gin"
)

// Accidents handles GET /api/accidents.
func (h *Handler) Accidents(c *gin.Context) {
	points := h.accidents.All()
	if points == nil {
		points = []model.AccidentPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// AccidentsGeoJSON handles GET /api/accidents.geojson.
func (h *Handler) AccidentsGeoJSON(c *gin.Context) {
	fc := dataset.FeatureCollection(h.accidents.All())
	raw, err := fc.MarshalJSON()
	if HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "application/geo+json", raw)
}
