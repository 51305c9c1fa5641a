package aspects

import (
	"math"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
)

// orbTolerance absorbs float rounding in the separation so that a pair
// sitting exactly on the orb limit is kept.
const orbTolerance = 1e-9

// Detector finds aspects between transiting bodies and natal entities.
type Detector struct {
	orbs OrbTable
}

// NewDetector creates a new Detector. A nil table means DefaultOrbs.
func NewDetector(orbs OrbTable) *Detector {
	if orbs == nil {
		orbs = DefaultOrbs()
	}
	return &Detector{orbs: orbs}
}

// Orbs returns the table in use.
func (d *Detector) Orbs() OrbTable {
	return d.orbs
}

// Detect compares every transiting body against natal bodies, points and
// angles, in that order, and reports every aspect type within its orb.
// Output order is fully determined by the input charts.
func (d *Detector) Detect(transit, natal *domain.Chart) []domain.Aspect {
	targets := natal.NatalTargets()
	var out []domain.Aspect
	for _, tb := range transit.Bodies {
		for _, nt := range targets {
			diff := Separation(tb.Position.Longitude, nt.Position.Longitude)
			for _, at := range domain.AspectTypes {
				orb := math.Abs(diff - at.Angle())
				limit := d.orbs.Max(at)
				if orb <= limit+orbTolerance {
					orb = math.Min(orb, limit)
					out = append(out, domain.Aspect{
						Type:    at,
						Orb:     orb,
						Transit: tb,
						Natal:   nt,
					})
				}
			}
		}
	}
	return out
}

// Separation is the shortest arc between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
