package handler

import (
	"net/http"
	"strconv"

	"accident-map/pricing"

	"github.com/gin-gonic/gin"
)

// Pricing handles GET /api/pricing?period=monthly|yearly[&toggle=true].
// With toggle set, the table of the other period is returned.
func (h *Handler) Pricing(c *gin.Context) {
	period, err := pricing.ParsePeriod(c.Query("period"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if raw := c.Query("toggle"); raw != "" {
		toggle, err := strconv.ParseBool(raw)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "toggle must be true or false")
			return
		}
		if toggle {
			period = pricing.Toggle(period)
		}
	}
	c.JSON(http.StatusOK, pricing.For(period))
}
