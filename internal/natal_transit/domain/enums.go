package domain

import (
	"math"
	"strings"
)

type Period string

const (
	PeriodNone Period = ""
	PeriodAM   Period = "AM"
	PeriodPM   Period = "PM"
)

type Category string

const (
	CategoryBodies Category = "bodies"
	CategoryPoints Category = "points"
	CategoryAngles Category = "angles"
)

type EntityName string

const (
	Sun     EntityName = "sun"
	Moon    EntityName = "moon"
	Mercury EntityName = "mercury"
	Venus   EntityName = "venus"
	Mars    EntityName = "mars"
	Jupiter EntityName = "jupiter"
	Saturn  EntityName = "saturn"
	Uranus  EntityName = "uranus"
	Neptune EntityName = "neptune"
	Pluto   EntityName = "pluto"
	Chiron  EntityName = "chiron"

	NorthNode EntityName = "northnode"
	SouthNode EntityName = "southnode"
	Lilith    EntityName = "lilith"

	Ascendant  EntityName = "ascendant"
	Midheaven  EntityName = "midheaven"
	Descendant EntityName = "descendant"
	ImumCoeli  EntityName = "imumcoeli"
)

// Fixed orderings. Providers emit entities in exactly this order.
var (
	BodyOrder  = []EntityName{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, Chiron}
	PointOrder = []EntityName{NorthNode, SouthNode, Lilith}
	AngleOrder = []EntityName{Ascendant, Midheaven, Descendant, ImumCoeli}
)

var entityLabels = map[EntityName]string{
	Sun:        "Sun",
	Moon:       "Moon",
	Mercury:    "Mercury",
	Venus:      "Venus",
	Mars:       "Mars",
	Jupiter:    "Jupiter",
	Saturn:     "Saturn",
	Uranus:     "Uranus",
	Neptune:    "Neptune",
	Pluto:      "Pluto",
	Chiron:     "Chiron",
	NorthNode:  "North Node",
	SouthNode:  "South Node",
	Lilith:     "Lilith",
	Ascendant:  "Ascendant",
	Midheaven:  "Midheaven",
	Descendant: "Descendant",
	ImumCoeli:  "IC",
}

var entityCategories = map[EntityName]Category{
	Sun:        CategoryBodies,
	Moon:       CategoryBodies,
	Mercury:    CategoryBodies,
	Venus:      CategoryBodies,
	Mars:       CategoryBodies,
	Jupiter:    CategoryBodies,
	Saturn:     CategoryBodies,
	Uranus:     CategoryBodies,
	Neptune:    CategoryBodies,
	Pluto:      CategoryBodies,
	Chiron:     CategoryBodies,
	NorthNode:  CategoryPoints,
	SouthNode:  CategoryPoints,
	Lilith:     CategoryPoints,
	Ascendant:  CategoryAngles,
	Midheaven:  CategoryAngles,
	Descendant: CategoryAngles,
	ImumCoeli:  CategoryAngles,
}

// Label returns the display label, or the raw name when unknown.
func (n EntityName) Label() string {
	if l, ok := entityLabels[n]; ok {
		return l
	}
	return string(n)
}

// Category reports the fixed category of a known entity.
func (n EntityName) Category() (Category, bool) {
	c, ok := entityCategories[n]
	return c, ok
}

type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

var Signs = [12]Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// SignOf returns the tropical sign containing a normalized longitude.
func SignOf(longitude float64) Sign {
	i := int(math.Floor(NormalizeDegrees(longitude) / 30))
	if i > 11 {
		i = 11
	}
	return Signs[i]
}

type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Quincunx    AspectType = "quincunx"
	Opposition  AspectType = "opposition"
)

// AspectTypes is the fixed evaluation order.
var AspectTypes = []AspectType{Conjunction, Sextile, Square, Trine, Quincunx, Opposition}

var aspectAngles = map[AspectType]float64{
	Conjunction: 0,
	Sextile:     60,
	Square:      90,
	Trine:       120,
	Quincunx:    150,
	Opposition:  180,
}

// Angle is the ideal separation in degrees.
func (t AspectType) Angle() float64 {
	return aspectAngles[t]
}

// ParseAspectType accepts the lower-case names, ignoring surrounding space and case.
func ParseAspectType(s string) (AspectType, bool) {
	t := AspectType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := aspectAngles[t]
	return t, ok
}

type HouseSystem string

const (
	HouseSystemWholeSign HouseSystem = "whole-sign"
	HouseSystemEqual     HouseSystem = "equal"
)

func (h HouseSystem) Valid() bool {
	return h == HouseSystemWholeSign || h == HouseSystemEqual
}

// NormalizeDegrees maps any finite angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if d >= 360 {
		d = 0
	}
	return d
}
