package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"accident-map/report"

	"github.com/gin-gonic/gin"
)

// SubmitReport handles POST /api/reports (multipart form).
func (h *Handler) SubmitReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, report.MaxImageSize+1<<20)

	var sub report.Submission
	if err := c.ShouldBind(&sub); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid report form")
		return
	}

	var image *multipart.FileHeader
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		image = fh
	case errors.Is(err, http.ErrMissingFile):
	default:
		errorJSON(c, http.StatusBadRequest, "invalid image upload")
		return
	}

	receipt, err := h.reports.Submit(c.Request.Context(), sub, image)
	if HandleError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
