package domain

import "time"

// Moment is a civil date/time as entered by the caller.
// Month is 1-based. When Period is set, Hour is on a 12-hour clock.
type Moment struct {
	Year   int    `json:"year" validate:"min=1,max=9999"`
	Month  int    `json:"month" validate:"min=1,max=12"`
	Day    int    `json:"day" validate:"min=1,max=31"`
	Hour   int    `json:"hour" validate:"min=0,max=23"`
	Minute int    `json:"minute" validate:"min=0,max=59"`
	Second int    `json:"second" validate:"min=0,max=59"`
	Period Period `json:"period,omitempty" validate:"omitempty,oneof=AM PM"`
	Zone   string `json:"timezone,omitempty"`
}

// Hour24 resolves the period indicator. The caller validates ranges first.
func (m Moment) Hour24() int {
	switch m.Period {
	case PeriodAM:
		if m.Hour == 12 {
			return 0
		}
	case PeriodPM:
		if m.Hour != 12 {
			return m.Hour + 12
		}
	}
	return m.Hour
}

// Location is a geographic position in decimal degrees, east and north positive.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ChartPosition is an ecliptic longitude in [0, 360) with its derived sign
// and a D° M' S'' rendering of the arc within that sign.
type ChartPosition struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Formatted string  `json:"formatted"`
}

// Entity is a body, calculated point or chart angle placed on the chart.
// House is nil when no house has been assigned.
type Entity struct {
	Name     EntityName    `json:"name"`
	Category Category      `json:"category"`
	Position ChartPosition `json:"position"`
	House    *int          `json:"house,omitempty"`
}

// Label is the human-readable entity name.
func (e Entity) Label() string {
	return e.Name.Label()
}

// HouseCusp marks the span of one house, start inclusive and end exclusive.
type HouseCusp struct {
	House int           `json:"house"`
	Start ChartPosition `json:"start"`
	End   ChartPosition `json:"end"`
}

// Chart is the full set of placements for one instant and location.
type Chart struct {
	Moment      Moment      `json:"moment"`
	Instant     time.Time   `json:"instant"`
	Location    Location    `json:"location"`
	HouseSystem HouseSystem `json:"house_system"`
	Bodies      []Entity    `json:"bodies"`
	Points      []Entity    `json:"points"`
	Angles      []Entity    `json:"angles"`
	Cusps       []HouseCusp `json:"cusps"`
}

// NatalTargets returns bodies, then points, then angles.
func (c *Chart) NatalTargets() []Entity {
	out := make([]Entity, 0, len(c.Bodies)+len(c.Points)+len(c.Angles))
	out = append(out, c.Bodies...)
	out = append(out, c.Points...)
	out = append(out, c.Angles...)
	return out
}

// Aspect relates one transiting entity to one natal entity.
type Aspect struct {
	Type    AspectType `json:"type"`
	Orb     float64    `json:"orb"`
	Transit Entity     `json:"transit"`
	Natal   Entity     `json:"natal"`
}

// CalculationRequest carries the birth inputs for one calculation.
type CalculationRequest struct {
	Moment   Moment
	Location Location
}

// CalculationReceipt summarizes a finished calculation. It never holds
// positions or aspects.
type CalculationReceipt struct {
	ID          string      `json:"id"`
	RequestID   string      `json:"request_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	NatalAt     time.Time   `json:"natal_at"`
	TransitAt   time.Time   `json:"transit_at"`
	HouseSystem HouseSystem `json:"house_system"`
	EntityCount int         `json:"entity_count"`
	AspectCount int         `json:"aspect_count"`
}

// BirthProfile is a saved set of birth inputs.
type BirthProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Moment    Moment    `json:"moment"`
	Location  Location  `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProfileRequest represents data needed to save a birth profile
type CreateProfileRequest struct {
	Name     string `validate:"required,max=120"`
	Moment   Moment
	Location Location
}

// CalculationRequest returns the stored inputs as a calculation request.
func (p *BirthProfile) CalculationRequest() CalculationRequest {
	return CalculationRequest{Moment: p.Moment, Location: p.Location}
}
