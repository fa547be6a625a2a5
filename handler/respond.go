package handler

import (
	"errors"
	"net/http"

	"accident-map/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// HandleError writes the response for err and reports whether it did.
// Typed errors use their kind's status; anything else is a 500.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		errorJSON(c, domainErr.HTTPStatus(), domainErr.Message)
		return true
	}

	_ = c.Error(err)
	errorJSON(c, http.StatusInternalServerError, "internal error")
	return true
}
