package domain

import (
	"fmt"
	"math"
)

// NewChartPosition normalizes a longitude and derives its sign and arc text.
func NewChartPosition(longitude float64) ChartPosition {
	lon := NormalizeDegrees(longitude)
	return ChartPosition{
		Longitude: lon,
		Sign:      SignOf(lon),
		Formatted: FormatArc(lon),
	}
}

// FormatArc renders the arc within the sign as D° M' S''. Components are
// truncated, never rounded up into the next unit.
func FormatArc(longitude float64) string {
	lon := NormalizeDegrees(longitude)
	arc := lon - 30*math.Floor(lon/30)
	deg := math.Floor(arc)
	minutes := (arc - deg) * 60
	mins := math.Floor(minutes)
	secs := math.Floor((minutes - mins) * 60)
	return fmt.Sprintf("%d° %d' %d''", int(deg), int(mins), int(secs))
}
