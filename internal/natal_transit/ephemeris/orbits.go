package ephemeris

import "math"

// Low-precision geocentric positions from mean orbital elements referred to
// the ecliptic and equinox of date, with the largest periodic terms for the
// Moon, Jupiter, Saturn and Uranus. Time argument d is days since
// 2000-01-00T00:00Z (JD 2451543.5).

const (
	unixEpochDay  = 10956.0
	unixEpochJD   = 2440587.5
	j2000JD       = 2451545.0
	precessionDay = 3.82394e-5
)

// elements holds orbital elements as value + rate*d.
type elements struct {
	N0, N1 float64 // longitude of ascending node
	I0, I1 float64 // inclination
	W0, W1 float64 // argument of perihelion
	A0, A1 float64 // semi-major axis
	E0, E1 float64 // eccentricity
	M0, M1 float64 // mean anomaly
}

var (
	mercuryElements = elements{48.3313, 3.24587e-5, 7.0047, 5.0e-8, 29.1241, 1.01444e-5, 0.387098, 0, 0.205635, 5.59e-10, 168.6562, 4.0923344368}
	venusElements   = elements{76.6799, 2.46590e-5, 3.3946, 2.75e-8, 54.8910, 1.38374e-5, 0.723330, 0, 0.006773, -1.302e-9, 48.0052, 1.6021302244}
	marsElements    = elements{49.5574, 2.11081e-5, 1.8497, -1.78e-8, 286.5016, 2.92961e-5, 1.523688, 0, 0.093405, 2.516e-9, 18.6021, 0.5240207766}
	jupiterElements = elements{100.4542, 2.76854e-5, 1.3030, -1.557e-7, 273.8777, 1.64505e-5, 5.20256, 0, 0.048498, 4.469e-9, 19.8950, 0.0830853001}
	saturnElements  = elements{113.6634, 2.38980e-5, 2.4886, -1.081e-7, 339.3939, 2.97661e-5, 9.55475, 0, 0.055546, -9.499e-9, 316.9670, 0.0334442282}
	uranusElements  = elements{74.0005, 1.3978e-5, 0.7733, 1.9e-8, 96.6612, 3.0565e-5, 19.18171, -1.55e-8, 0.047318, 7.45e-9, 142.5905, 0.011725806}
	neptuneElements = elements{131.7806, 3.0173e-5, 1.7700, -2.55e-7, 272.8461, -6.027e-6, 30.05826, 3.313e-8, 0.008606, 2.15e-9, 260.2471, 0.005995147}
	// J2000 elements, perihelion 1996-02-14; node carries general precession.
	chironElements = elements{209.35, precessionDay, 6.93, 0, 339.56, 0, 13.648, 0, 0.3790, 0, 27.68, 0.019556}
	moonElements   = elements{125.1228, -0.0529538083, 5.1454, 0, 318.0634, 0.1643573223, 60.2666, 0, 0.054900, 0, 115.3654, 13.0649929509}
)

type vec3 struct{ X, Y, Z float64 }

func sind(x float64) float64 { return math.Sin(x * math.Pi / 180) }
func cosd(x float64) float64 { return math.Cos(x * math.Pi / 180) }
func tand(x float64) float64 { return math.Tan(x * math.Pi / 180) }
func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

func rev(x float64) float64 {
	r := math.Mod(x, 360)
	if r < 0 {
		r += 360
	}
	return r
}

func dayNumber(unixSeconds float64) float64 {
	return unixSeconds/86400 - unixEpochDay
}

func julianDay(unixSeconds float64) float64 {
	return unixSeconds/86400 + unixEpochJD
}

func obliquity(d float64) float64 {
	return 23.4393 - 3.563e-7*d
}

// eccentricAnomaly solves Kepler's equation by Newton iteration, in degrees.
func eccentricAnomaly(m, e float64) float64 {
	const deg = 180 / math.Pi
	ea := m + e*deg*sind(m)*(1+e*cosd(m))
	for i := 0; i < 30; i++ {
		next := ea - (ea-e*deg*sind(ea)-m)/(1-e*cosd(ea))
		if math.Abs(next-ea) < 1e-8 {
			return next
		}
		ea = next
	}
	return ea
}

// orbitalPosition returns the position in the orbit's own frame: true
// anomaly v and distance r.
func orbitalPosition(a, e, m float64) (v, r float64) {
	ea := eccentricAnomaly(m, e)
	xv := a * (cosd(ea) - e)
	yv := a * math.Sqrt(1-e*e) * sind(ea)
	return atan2d(yv, xv), math.Hypot(xv, yv)
}

func (el elements) at(d float64) (n, i, w, a, e, m float64) {
	return el.N0 + el.N1*d, el.I0 + el.I1*d, el.W0 + el.W1*d, el.A0 + el.A1*d, el.E0 + el.E1*d, rev(el.M0 + el.M1*d)
}

// eclipticPosition returns rectangular ecliptic coordinates around the
// orbit's central body, plus the mean anomaly used.
func (el elements) eclipticPosition(d float64) (vec3, float64) {
	n, i, w, a, e, m := el.at(d)
	v, r := orbitalPosition(a, e, m)
	return vec3{
		X: r * (cosd(n)*cosd(v+w) - sind(n)*sind(v+w)*cosd(i)),
		Y: r * (sind(n)*cosd(v+w) + cosd(n)*sind(v+w)*cosd(i)),
		Z: r * sind(v+w) * sind(i),
	}, m
}

type solar struct {
	Longitude     float64 // true geocentric longitude
	Distance      float64 // AU
	MeanAnomaly   float64
	Perihelion    float64 // argument of perihelion
	MeanLongitude float64
}

func sunPosition(d float64) solar {
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	m := rev(356.0470 + 0.9856002585*d)
	v, r := orbitalPosition(1, e, m)
	return solar{
		Longitude:     rev(v + w),
		Distance:      r,
		MeanAnomaly:   m,
		Perihelion:    w,
		MeanLongitude: rev(m + w),
	}
}

// geocentric shifts a heliocentric position by the Sun's geocentric one
// and returns the ecliptic longitude.
func geocentric(h vec3, sun solar) float64 {
	xs := sun.Distance * cosd(sun.Longitude)
	ys := sun.Distance * sind(sun.Longitude)
	return rev(atan2d(h.Y+ys, h.X+xs))
}

func fromSpherical(lon, lat, r float64) vec3 {
	return vec3{
		X: r * cosd(lon) * cosd(lat),
		Y: r * sind(lon) * cosd(lat),
		Z: r * sind(lat),
	}
}

func toSpherical(v vec3) (lon, lat, r float64) {
	return atan2d(v.Y, v.X), atan2d(v.Z, math.Hypot(v.X, v.Y)), math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func innerPlanet(el elements, d float64, sun solar) float64 {
	h, _ := el.eclipticPosition(d)
	return geocentric(h, sun)
}

// outerPlanets computes Jupiter, Saturn and Uranus together because their
// mutual perturbations share the mean anomalies.
func outerPlanets(d float64, sun solar) (jupiter, saturn, uranus float64) {
	hj, mj := jupiterElements.eclipticPosition(d)
	hs, ms := saturnElements.eclipticPosition(d)
	hu, mu := uranusElements.eclipticPosition(d)

	lon, lat, r := toSpherical(hj)
	lon += -0.332*sind(2*mj-5*ms-67.6) -
		0.056*sind(2*mj-2*ms+21) +
		0.042*sind(3*mj-5*ms+21) -
		0.036*sind(mj-2*ms) +
		0.022*cosd(mj-ms) +
		0.023*sind(2*mj-3*ms+52) -
		0.016*sind(mj-5*ms-69)
	jupiter = geocentric(fromSpherical(lon, lat, r), sun)

	lon, lat, r = toSpherical(hs)
	lon += 0.812*sind(2*mj-5*ms-67.6) -
		0.229*cosd(2*mj-4*ms-2) +
		0.119*sind(mj-2*ms-3) +
		0.046*sind(2*mj-6*ms-69) +
		0.014*sind(mj-3*ms+32)
	saturn = geocentric(fromSpherical(lon, lat, r), sun)

	lon, lat, r = toSpherical(hu)
	lon += 0.040*sind(ms-2*mu+6) +
		0.035*sind(ms-3*mu+33) -
		0.015*sind(mj-mu+20)
	uranus = geocentric(fromSpherical(lon, lat, r), sun)
	return jupiter, saturn, uranus
}

// pluto uses a periodic fit valid for roughly 1800-2100, referred to J2000
// and precessed to the equinox of date.
func pluto(d float64, sun solar) float64 {
	s := 50.03 + 0.033459652*d
	p := 238.95 + 0.003968789*d
	lon := 238.9508 + 0.00400703*d -
		19.799*sind(p) + 19.848*cosd(p) +
		0.897*sind(2*p) - 4.956*cosd(2*p) +
		0.610*sind(3*p) + 1.211*cosd(3*p) -
		0.341*sind(4*p) - 0.190*cosd(4*p) +
		0.128*sind(5*p) - 0.034*cosd(5*p) -
		0.038*sind(6*p) + 0.031*cosd(6*p) +
		0.020*sind(s-p) - 0.010*cosd(s-p)
	lat := -3.9082 -
		5.453*sind(p) - 14.975*cosd(p) +
		3.527*sind(2*p) + 1.673*cosd(2*p) -
		1.051*sind(3*p) + 0.328*cosd(3*p) +
		0.179*sind(4*p) - 0.292*cosd(4*p) +
		0.019*sind(5*p) + 0.100*cosd(5*p) -
		0.031*sind(6*p) - 0.026*cosd(6*p) +
		0.011*cosd(s-p)
	r := 40.72 +
		6.68*sind(p) + 6.90*cosd(p) -
		1.18*sind(2*p) - 0.03*cosd(2*p) +
		0.15*sind(3*p) - 0.14*cosd(3*p)
	lon += precessionDay * d
	return geocentric(fromSpherical(lon, lat, r), sun)
}

type lunar struct {
	Longitude float64
	Node      float64 // mean ascending node
	Apogee    float64 // mean apogee (Black Moon Lilith)
}

func moonPosition(d float64, sun solar) lunar {
	g, mm := moonElements.eclipticPosition(d)
	n, _, w, _, _, _ := moonElements.at(d)

	lon := atan2d(g.Y, g.X)
	ms := sun.MeanAnomaly
	ls := sun.MeanAnomaly + sun.Perihelion
	lm := mm + w + n
	dd := lm - ls
	f := lm - n
	lon += -1.274*sind(mm-2*dd) +
		0.658*sind(2*dd) -
		0.186*sind(ms) -
		0.059*sind(2*mm-2*dd) -
		0.057*sind(mm-2*dd+ms) +
		0.053*sind(mm+2*dd) +
		0.046*sind(2*dd-ms) +
		0.041*sind(mm-ms) -
		0.035*sind(dd) -
		0.031*sind(mm+ms) -
		0.015*sind(2*f-2*dd) +
		0.011*sind(mm-4*dd)

	return lunar{
		Longitude: rev(lon),
		Node:      rev(n),
		Apogee:    rev(n + w + 180),
	}
}
