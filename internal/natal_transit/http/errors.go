package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/gin-gonic/gin"
)

const (
	msgCalculateFailed  = "Failed to calculate chart"
	msgMethodNotAllowed = "Method not allowed"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrReceiptNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes an opaque error body. Details go to the log only.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	fields := []interface{}{"request_id", c.GetString("request_id"), "path", c.FullPath(), "status", status, "error", err}
	if status >= http.StatusInternalServerError {
		h.log.Error(msg, fields...)
	} else {
		h.log.Info(msg, fields...)
	}
	c.JSON(status, gin.H{"error": msg})
}

// MethodNotAllowed answers every method a route does not serve.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
}
