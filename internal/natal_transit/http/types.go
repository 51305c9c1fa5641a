package http

import (
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/service"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
)

// Handler handles HTTP requests for chart calculations and birth profiles
type Handler struct {
	charts   *service.ChartService
	profiles *service.ProfileService
	digests  DigestSubscriber
	timeout  time.Duration
	log      *logger.Logger
}

// New creates a new Handler. profiles may be nil, in which case the
// profile routes are not registered.
func New(charts *service.ChartService, profiles *service.ProfileService, timeout time.Duration, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		charts:   charts,
		profiles: profiles,
		timeout:  timeout,
		log:      log,
	}
}

// birthFields is the flat birth data accepted by the web client. Pointers
// distinguish a missing field from a zero value.
type birthFields struct {
	Year      *int     `json:"year" binding:"required"`
	Month     *int     `json:"month" binding:"required"`
	Day       *int     `json:"day" binding:"required"`
	Hour      *int     `json:"hour" binding:"required"`
	Minute    *int     `json:"minute" binding:"required"`
	Second    *int     `json:"second"`
	Period    string   `json:"period"`
	Timezone  string   `json:"timezone"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (b birthFields) moment() domain.Moment {
	m := domain.Moment{
		Year:   *b.Year,
		Month:  *b.Month,
		Day:    *b.Day,
		Hour:   *b.Hour,
		Minute: *b.Minute,
		Period: domain.Period(b.Period),
		Zone:   b.Timezone,
	}
	if b.Second != nil {
		m.Second = *b.Second
	}
	return m
}

func (b birthFields) location() domain.Location {
	return domain.Location{Latitude: *b.Latitude, Longitude: *b.Longitude}
}

func (b birthFields) request() domain.CalculationRequest {
	return domain.CalculationRequest{Moment: b.moment(), Location: b.location()}
}

type calculateRequest struct {
	birthFields
}

type createProfileRequest struct {
	Name string `json:"name" binding:"required"`
	birthFields
}
