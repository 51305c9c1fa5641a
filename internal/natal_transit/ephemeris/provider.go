package ephemeris

import (
	"context"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
)

// Provider computes raw ecliptic longitudes and house cusps for one instant
// and location. Implementations must be safe for concurrent use.
type Provider interface {
	Compute(ctx context.Context, instant time.Time, loc domain.Location, system domain.HouseSystem) (*Snapshot, error)
}

// Placement is one entity's raw longitude. House is set only when the
// provider assigns one directly, which it does for bodies.
type Placement struct {
	Name      domain.EntityName
	Longitude float64
	House     *int
}

// Cusp is a house boundary pair in decimal degrees.
type Cusp struct {
	House int
	Start float64
	End   float64
}

// Snapshot is the provider output. Slices follow domain.BodyOrder,
// domain.PointOrder and domain.AngleOrder.
type Snapshot struct {
	Bodies []Placement
	Points []Placement
	Angles []Placement
	Cusps  []Cusp
}
