package houses

import "github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"

// Resolve returns the house whose half-open span [start, end) contains the
// position, checking houses in order. A house that crosses 0° is unrolled
// past 360 and the position is lifted with it. ok is false when no cusp
// matches, which means the cusp set has a gap.
func Resolve(position float64, cusps []domain.HouseCusp) (house int, ok bool) {
	for i, c := range cusps {
		start := c.Start.Longitude
		end := c.End.Longitude
		if end < start {
			end += 360
		}

		p := position
		if p < start && end > 360 {
			p += 360
		}

		if p >= start && p < end {
			if c.House != 0 {
				return c.House, true
			}
			return i + 1, true
		}
	}
	return 0, false
}

// Assign fills in houses for entities that have none, returning new
// entities. Entities with a house are copied unchanged.
func Assign(entities []domain.Entity, cusps []domain.HouseCusp) ([]domain.Entity, error) {
	out := make([]domain.Entity, len(entities))
	for i, e := range entities {
		out[i] = e
		if e.House != nil {
			continue
		}
		h, ok := Resolve(e.Position.Longitude, cusps)
		if !ok {
			return nil, &domain.DataConsistencyError{Entity: e.Name, Position: e.Position.Longitude}
		}
		out[i].House = &h
	}
	return out, nil
}
