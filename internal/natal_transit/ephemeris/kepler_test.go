package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newYork = domain.Location{Latitude: 40.7128, Longitude: -74.0060}

func computeAt(t *testing.T, instant time.Time, system domain.HouseSystem) *Snapshot {
	t.Helper()
	snap, err := NewKepler().Compute(context.Background(), instant, newYork, system)
	require.NoError(t, err)
	return snap
}

func longitudeOf(t *testing.T, placements []Placement, name domain.EntityName) float64 {
	t.Helper()
	for _, p := range placements {
		if p.Name == name {
			return p.Longitude
		}
	}
	t.Fatalf("placement %s not found", name)
	return 0
}

func TestKepler_J2000Positions(t *testing.T) {
	snap := computeAt(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), domain.HouseSystemWholeSign)

	// Reference longitudes for 2000-01-01T12:00Z, equinox of date.
	cases := []struct {
		name  domain.EntityName
		want  float64
		delta float64
	}{
		{domain.Sun, 280.38, 0.05},
		{domain.Moon, 223.35, 0.5},
		{domain.Mercury, 271.9, 0.2},
		{domain.Venus, 241.58, 0.2},
		{domain.Mars, 327.98, 0.2},
		{domain.Jupiter, 25.27, 0.2},
		{domain.Saturn, 40.38, 0.2},
		{domain.Uranus, 314.82, 0.2},
		{domain.Neptune, 303.19, 0.2},
		{domain.Pluto, 251.46, 0.3},
		{domain.Chiron, 251.5, 0.5},
	}
	for _, tc := range cases {
		t.Run(string(tc.name), func(t *testing.T) {
			assert.InDelta(t, tc.want, longitudeOf(t, snap.Bodies, tc.name), tc.delta)
		})
	}

	assert.InDelta(t, 125.04, longitudeOf(t, snap.Points, domain.NorthNode), 0.05)
	assert.InDelta(t, 305.04, longitudeOf(t, snap.Points, domain.SouthNode), 0.05)
	assert.InDelta(t, 263.35, longitudeOf(t, snap.Points, domain.Lilith), 0.05)
}

func TestKepler_Ordering(t *testing.T) {
	snap := computeAt(t, time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC), domain.HouseSystemWholeSign)

	require.Len(t, snap.Bodies, len(domain.BodyOrder))
	require.Len(t, snap.Points, len(domain.PointOrder))
	require.Len(t, snap.Angles, len(domain.AngleOrder))
	for i, name := range domain.BodyOrder {
		assert.Equal(t, name, snap.Bodies[i].Name)
		require.NotNil(t, snap.Bodies[i].House)
		assert.GreaterOrEqual(t, *snap.Bodies[i].House, 1)
		assert.LessOrEqual(t, *snap.Bodies[i].House, 12)
	}
	for i, name := range domain.PointOrder {
		assert.Equal(t, name, snap.Points[i].Name)
		assert.Nil(t, snap.Points[i].House)
	}
	for i, name := range domain.AngleOrder {
		assert.Equal(t, name, snap.Angles[i].Name)
		assert.Nil(t, snap.Angles[i].House)
	}
}

func TestKepler_LocalNoonAngles(t *testing.T) {
	// Noon EST: the Sun culminates, so the midheaven is near it.
	snap := computeAt(t, time.Date(2000, 1, 1, 17, 0, 0, 0, time.UTC), domain.HouseSystemWholeSign)

	sun := longitudeOf(t, snap.Bodies, domain.Sun)
	mc := longitudeOf(t, snap.Angles, domain.Midheaven)
	asc := longitudeOf(t, snap.Angles, domain.Ascendant)

	assert.InDelta(t, sun, mc, 2)
	assert.InDelta(t, 19.97, asc, 0.1)
	assert.InDelta(t, rev(asc+180), longitudeOf(t, snap.Angles, domain.Descendant), 1e-9)
	assert.InDelta(t, rev(mc+180), longitudeOf(t, snap.Angles, domain.ImumCoeli), 1e-9)

	// Ascendant in Aries, Sun in Capricorn: tenth whole-sign house.
	require.NotNil(t, snap.Bodies[0].House)
	assert.Equal(t, 10, *snap.Bodies[0].House)
}

func TestKepler_CuspsAreContiguous(t *testing.T) {
	instant := time.Date(1987, 7, 14, 22, 45, 0, 0, time.UTC)
	for _, system := range []domain.HouseSystem{domain.HouseSystemWholeSign, domain.HouseSystemEqual} {
		t.Run(string(system), func(t *testing.T) {
			snap := computeAt(t, instant, system)
			require.Len(t, snap.Cusps, 12)
			for i, c := range snap.Cusps {
				assert.Equal(t, i+1, c.House)
				next := snap.Cusps[(i+1)%12]
				assert.InDelta(t, next.Start, c.End, 1e-9)
			}
		})
	}

	whole := computeAt(t, instant, domain.HouseSystemWholeSign)
	assert.Zero(t, int(whole.Cusps[0].Start)%30)

	equal := computeAt(t, instant, domain.HouseSystemEqual)
	assert.InDelta(t, longitudeOf(t, equal.Angles, domain.Ascendant), equal.Cusps[0].Start, 1e-9)
}

func TestKepler_Errors(t *testing.T) {
	k := NewKepler()
	instant := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := k.Compute(ctx, instant, newYork, domain.HouseSystemWholeSign)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unsupported house system", func(t *testing.T) {
		_, err := k.Compute(context.Background(), instant, newYork, domain.HouseSystem("placidus"))
		assert.Error(t, err)
	})

	t.Run("pole", func(t *testing.T) {
		_, err := k.Compute(context.Background(), instant, domain.Location{Latitude: 90}, domain.HouseSystemWholeSign)
		assert.Error(t, err)
	})
}

func TestHouseOf(t *testing.T) {
	assert.Equal(t, 1, houseOf(domain.HouseSystemWholeSign, 15, 0))
	assert.Equal(t, 12, houseOf(domain.HouseSystemWholeSign, 15, 359))
	assert.Equal(t, 12, houseOf(domain.HouseSystemEqual, 15, 0))
	assert.Equal(t, 1, houseOf(domain.HouseSystemEqual, 15, 15))
	assert.Equal(t, 2, houseOf(domain.HouseSystemEqual, 15, 45))
}
