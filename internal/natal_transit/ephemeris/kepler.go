package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
)

// Kepler is a low-precision Provider built on mean orbital elements.
// It is stateless.
type Kepler struct{}

// NewKepler creates a new Kepler provider
func NewKepler() *Kepler {
	return &Kepler{}
}

// Compute returns longitudes for every body, point and angle, and the twelve
// cusps of the requested house system. Bodies carry a house.
func (k *Kepler) Compute(ctx context.Context, instant time.Time, loc domain.Location, system domain.HouseSystem) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !system.Valid() {
		return nil, fmt.Errorf("unsupported house system %q", system)
	}
	if math.Abs(loc.Latitude) >= 90 {
		// The ascendant is undefined at the poles.
		return nil, fmt.Errorf("latitude %.4f has no defined ascendant", loc.Latitude)
	}

	unix := float64(instant.UnixNano()) / 1e9
	d := dayNumber(unix)

	sun := sunPosition(d)
	moon := moonPosition(d, sun)
	jupiter, saturn, uranus := outerPlanets(d, sun)

	longitudes := map[domain.EntityName]float64{
		domain.Sun:     sun.Longitude,
		domain.Moon:    moon.Longitude,
		domain.Mercury: innerPlanet(mercuryElements, d, sun),
		domain.Venus:   innerPlanet(venusElements, d, sun),
		domain.Mars:    innerPlanet(marsElements, d, sun),
		domain.Jupiter: jupiter,
		domain.Saturn:  saturn,
		domain.Uranus:  uranus,
		domain.Neptune: innerPlanet(neptuneElements, d, sun),
		domain.Pluto:   pluto(d, sun),
		domain.Chiron:  innerPlanet(chironElements, d, sun),

		domain.NorthNode: moon.Node,
		domain.SouthNode: rev(moon.Node + 180),
		domain.Lilith:    moon.Apogee,
	}

	asc, mc := chartAngles(julianDay(unix), obliquity(d), loc)
	longitudes[domain.Ascendant] = asc
	longitudes[domain.Midheaven] = mc
	longitudes[domain.Descendant] = rev(asc + 180)
	longitudes[domain.ImumCoeli] = rev(mc + 180)

	cusps := houseCusps(system, asc)

	snap := &Snapshot{Cusps: cusps}
	for _, name := range domain.BodyOrder {
		lon := longitudes[name]
		house := houseOf(system, asc, lon)
		snap.Bodies = append(snap.Bodies, Placement{Name: name, Longitude: lon, House: &house})
	}
	for _, name := range domain.PointOrder {
		snap.Points = append(snap.Points, Placement{Name: name, Longitude: longitudes[name]})
	}
	for _, name := range domain.AngleOrder {
		snap.Angles = append(snap.Angles, Placement{Name: name, Longitude: longitudes[name]})
	}
	return snap, nil
}

// chartAngles returns the ascendant and midheaven for a Julian day.
func chartAngles(jd, ecl float64, loc domain.Location) (asc, mc float64) {
	gmst := rev(280.46061837 + 360.98564736629*(jd-j2000JD))
	ramc := rev(gmst + loc.Longitude)
	mc = rev(atan2d(sind(ramc), cosd(ramc)*cosd(ecl)))
	asc = rev(atan2d(cosd(ramc), -(sind(ramc)*cosd(ecl) + tand(loc.Latitude)*sind(ecl))))
	return asc, mc
}

func houseCusps(system domain.HouseSystem, asc float64) []Cusp {
	first := asc
	if system == domain.HouseSystemWholeSign {
		first = math.Floor(asc/30) * 30
	}
	cusps := make([]Cusp, 12)
	for i := range cusps {
		start := rev(first + float64(i)*30)
		cusps[i] = Cusp{House: i + 1, Start: start, End: rev(start + 30)}
	}
	return cusps
}

// houseOf places a longitude directly. Both supported systems use 30 degree
// houses, so this is an offset from the first cusp.
func houseOf(system domain.HouseSystem, asc, lon float64) int {
	if system == domain.HouseSystemWholeSign {
		return (int(math.Floor(lon/30))-int(math.Floor(asc/30))+12)%12 + 1
	}
	return int(math.Floor(rev(lon-asc)/30))%12 + 1
}
