package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/ephemeris"
	"github.com/go-playground/validator/v10"
)

// Builder turns validated inputs into Chart values through an ephemeris
// provider. It keeps no cache: every call computes afresh.
type Builder struct {
	provider ephemeris.Provider
	system   domain.HouseSystem
	validate *validator.Validate
}

// NewBuilder creates a new Builder
func NewBuilder(provider ephemeris.Provider, system domain.HouseSystem) *Builder {
	if system == "" {
		system = domain.HouseSystemWholeSign
	}
	return &Builder{
		provider: provider,
		system:   system,
		validate: newValidator(),
	}
}

// HouseSystem reports the system used for every chart this builder makes.
func (b *Builder) HouseSystem() domain.HouseSystem {
	return b.system
}

// Build validates a civil moment and location and computes the chart.
func (b *Builder) Build(ctx context.Context, m domain.Moment, loc domain.Location) (*domain.Chart, error) {
	if err := b.ValidateLocation(loc); err != nil {
		return nil, err
	}
	instant, err := b.ValidateMoment(m)
	if err != nil {
		return nil, err
	}
	return b.compute(ctx, m, instant, loc)
}

// BuildAt computes the chart for an exact instant, used for transits.
func (b *Builder) BuildAt(ctx context.Context, instant time.Time, loc domain.Location) (*domain.Chart, error) {
	if err := b.ValidateLocation(loc); err != nil {
		return nil, err
	}
	u := instant.UTC()
	m := domain.Moment{
		Year:   u.Year(),
		Month:  int(u.Month()),
		Day:    u.Day(),
		Hour:   u.Hour(),
		Minute: u.Minute(),
		Second: u.Second(),
	}
	return b.compute(ctx, m, instant, loc)
}

func (b *Builder) compute(ctx context.Context, m domain.Moment, instant time.Time, loc domain.Location) (*domain.Chart, error) {
	snap, err := b.provider.Compute(ctx, instant, loc, b.system)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &domain.EphemerisError{Err: err}
	}
	if err := checkSnapshot(snap); err != nil {
		return nil, &domain.EphemerisError{Err: err}
	}

	c := &domain.Chart{
		Moment:      m,
		Instant:     instant.UTC(),
		Location:    loc,
		HouseSystem: b.system,
		Bodies:      entities(snap.Bodies, domain.CategoryBodies),
		Points:      entities(snap.Points, domain.CategoryPoints),
		Angles:      entities(snap.Angles, domain.CategoryAngles),
		Cusps:       make([]domain.HouseCusp, len(snap.Cusps)),
	}
	for i, cusp := range snap.Cusps {
		c.Cusps[i] = domain.HouseCusp{
			House: cusp.House,
			Start: domain.NewChartPosition(cusp.Start),
			End:   domain.NewChartPosition(cusp.End),
		}
	}
	return c, nil
}

func entities(placements []ephemeris.Placement, category domain.Category) []domain.Entity {
	out := make([]domain.Entity, len(placements))
	for i, p := range placements {
		out[i] = domain.Entity{
			Name:     p.Name,
			Category: category,
			Position: domain.NewChartPosition(p.Longitude),
		}
		if p.House != nil {
			h := *p.House
			out[i].House = &h
		}
	}
	return out
}

// checkSnapshot enforces the provider contract before any value reaches a chart.
func checkSnapshot(snap *ephemeris.Snapshot) error {
	if snap == nil {
		return errors.New("provider returned no snapshot")
	}
	if len(snap.Cusps) != 12 {
		return fmt.Errorf("expected 12 house cusps, got %d", len(snap.Cusps))
	}
	groups := []struct {
		category   domain.Category
		placements []ephemeris.Placement
	}{
		{domain.CategoryBodies, snap.Bodies},
		{domain.CategoryPoints, snap.Points},
		{domain.CategoryAngles, snap.Angles},
	}
	for _, g := range groups {
		for _, p := range g.placements {
			if cat, ok := p.Name.Category(); !ok || cat != g.category {
				return fmt.Errorf("%s is not in category %s", p.Name, g.category)
			}
			if !finite(p.Longitude) {
				return fmt.Errorf("non-finite longitude for %s", p.Name)
			}
			if p.House != nil && (*p.House < 1 || *p.House > 12) {
				return fmt.Errorf("house %d out of range for %s", *p.House, p.Name)
			}
		}
	}
	for i, c := range snap.Cusps {
		if c.House != i+1 {
			return fmt.Errorf("cusp %d labelled house %d", i+1, c.House)
		}
		if !finite(c.Start) || !finite(c.End) {
			return fmt.Errorf("non-finite cusp %d", c.House)
		}
	}
	return nil
}
