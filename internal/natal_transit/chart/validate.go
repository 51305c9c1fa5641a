package chart

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateLocation checks coordinates are finite and in range.
func (b *Builder) ValidateLocation(loc domain.Location) error {
	if !finite(loc.Latitude) {
		return &domain.InvalidInputError{Field: "latitude", Reason: "must be a finite number"}
	}
	if !finite(loc.Longitude) {
		return &domain.InvalidInputError{Field: "longitude", Reason: "must be a finite number"}
	}
	return b.structErr(b.validate.Struct(loc))
}

// ValidateMoment checks every civil field and resolves the moment to an
// instant. This is the only place a 1-based month becomes a time.Month.
func (b *Builder) ValidateMoment(m domain.Moment) (time.Time, error) {
	if err := b.structErr(b.validate.Struct(m)); err != nil {
		return time.Time{}, err
	}
	if m.Period != domain.PeriodNone && (m.Hour < 1 || m.Hour > 12) {
		return time.Time{}, &domain.InvalidInputError{Field: "hour", Reason: "must be 1-12 with a period"}
	}
	if last := daysIn(m.Year, m.Month); m.Day > last {
		return time.Time{}, &domain.InvalidInputError{Field: "day", Reason: "exceeds days in month"}
	}

	zone := time.UTC
	if m.Zone != "" {
		z, err := time.LoadLocation(m.Zone)
		if err != nil {
			return time.Time{}, &domain.InvalidInputError{Field: "timezone", Reason: "unknown zone"}
		}
		zone = z
	}

	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour24(), m.Minute, m.Second, 0, zone), nil
}

func (b *Builder) structErr(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.InvalidInputError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " " + fe.Param()}
	}
	return &domain.InvalidInputError{Field: "request", Reason: err.Error()}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
