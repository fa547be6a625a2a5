package handler

import (
	"net/http"
	"strconv"

	"accident-map/model"

	"github.com/gin-gonic/gin"
)

type ReverseQuery struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lon *float64 `form:"lon" binding:"required,longitude"`
}

// Suggest handles GET /api/geocode/suggest?q=. A blank query returns an
// empty list.
func (h *Handler) Suggest(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.Suggest(c.Request.Context(), c.Query("q")))
}

// Reverse handles GET /api/geocode/reverse?lat=&lon=.
func (h *Handler) Reverse(c *gin.Context) {
	var q ReverseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		errorJSON(c, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	place, err := h.planner.Reverse(c.Request.Context(), model.Point{Lat: *q.Lat, Lng: *q.Lon})
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, place)
}

// FetchPhotos handles GET /fetch-photos?placeId= and returns the Commons
// listing in its own format.
func (h *Handler) FetchPhotos(c *gin.Context) {
	placeID, err := strconv.ParseInt(c.Query("placeId"), 10, 64)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "placeId must be an integer")
		return
	}

	photos, err := h.planner.FetchPhotos(c.Request.Context(), placeID)
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusOK, photos)
}
