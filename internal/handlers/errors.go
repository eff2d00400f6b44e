package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-template-backend/internal/models"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFile), errors.Is(err, models.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope and records err on the context
// for the request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := models.ErrorCode(err)
	msg := err.Error()
	if code == "InternalError" {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(statusFor(err), models.ErrorResponse{Error: msg, Code: code})
}
