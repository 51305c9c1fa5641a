package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Calculate computes the natal chart, current transits and aspects
func (h *Handler) Calculate(c *gin.Context) {
	var body calculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, &domain.InvalidInputError{Field: "body", Reason: err.Error()}, msgCalculateFailed)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.charts.Calculate(ctx, body.request())
	if err != nil {
		h.fail(c, err, msgCalculateFailed)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetReceipt retrieves a calculation receipt by ID
func (h *Handler) GetReceipt(c *gin.Context) {
	receipt, err := h.charts.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Receipt not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

// CreateProfile saves birth data for later transit lookups
func (h *Handler) CreateProfile(c *gin.Context) {
	var body createProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, &domain.InvalidInputError{Field: "body", Reason: err.Error()}, "Failed to save profile")
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), &domain.CreateProfileRequest{
		Name:     body.Name,
		Moment:   body.moment(),
		Location: body.location(),
	})
	if err != nil {
		h.fail(c, err, "Failed to save profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile retrieves a birth profile by ID
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ListProfiles lists saved birth profiles, newest first
func (h *Handler) ListProfiles(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.fail(c, &domain.InvalidInputError{Field: "limit", Reason: "must be a positive integer"}, "Invalid limit")
			return
		}
		limit = min(n, maxListLimit)
	}

	profiles, err := h.profiles.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err, "Failed to list profiles")
		return
	}
	if profiles == nil {
		profiles = []*domain.BirthProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// DeleteProfile removes a birth profile
func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Profile not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// ProfileTransits calculates current transits for a saved profile
func (h *Handler) ProfileTransits(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.profiles.Transits(ctx, c.Param("id"))
	if err != nil {
		msg := msgCalculateFailed
		if statusFor(err) == http.StatusNotFound {
			msg = "Profile not found"
		}
		h.fail(c, err, msg)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// requestContext bounds a calculation and carries the request id to the
// service layer.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := service.WithRequestID(c.Request.Context(), c.GetString("request_id"))
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}
