package format

import (
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/samber/lo"
)

// TransitDateLayout matches an ISO-8601 instant with milliseconds in UTC.
const TransitDateLayout = "2006-01-02T15:04:05.000Z07:00"

type NatalPlacement struct {
	Name     string     `json:"name"`
	Symbol   string     `json:"symbol"`
	Sign     string     `json:"sign"`
	Position string     `json:"position"`
	House    HouseValue `json:"house"`
}

type TransitPlacement struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Sign     string `json:"sign"`
	Position string `json:"position"`
}

type AspectView struct {
	TransitPlanet string `json:"transitPlanet"`
	NatalPlanet   string `json:"natalPlanet"`
	Type          string `json:"type"`
	Symbol        string `json:"symbol"`
	Orb           string `json:"orb"`
}

type NatalView struct {
	Planets []NatalPlacement `json:"planets"`
	Angles  []NatalPlacement `json:"angles"`
	Points  []NatalPlacement `json:"points"`
}

type TransitView struct {
	Date    string             `json:"date"`
	Planets []TransitPlacement `json:"planets"`
}

// Response is the payload returned to the web client.
type Response struct {
	Natal    NatalView    `json:"natal"`
	Transits TransitView  `json:"transits"`
	Aspects  []AspectView `json:"aspects"`
}

// NewResponse assembles the client payload. now is the instant the transit
// chart was built for.
func NewResponse(natal, transit *domain.Chart, aspects []domain.Aspect, now time.Time) Response {
	return Response{
		Natal: NatalView{
			Planets: lo.Map(natal.Bodies, toNatal),
			Angles:  lo.Map(natal.Angles, toNatal),
			Points:  lo.Map(natal.Points, toNatal),
		},
		Transits: TransitView{
			Date:    now.UTC().Format(TransitDateLayout),
			Planets: lo.Map(transit.Bodies, toTransit),
		},
		Aspects: Aspects(aspects),
	}
}

// Aspects converts detector output to its wire form.
func Aspects(aspects []domain.Aspect) []AspectView {
	return lo.Map(aspects, func(a domain.Aspect, _ int) AspectView {
		return AspectView{
			TransitPlanet: LabelWithPosition(a.Transit),
			NatalPlanet:   LabelWithPosition(a.Natal),
			Type:          string(a.Type),
			Symbol:        domain.Glyph(string(a.Type)),
			Orb:           FormatOrb(a.Orb),
		}
	})
}

func toNatal(e domain.Entity, _ int) NatalPlacement {
	return NatalPlacement{
		Name:     e.Label(),
		Symbol:   domain.Glyph(e.Label()),
		Sign:     string(e.Position.Sign),
		Position: TrimPosition(e.Position.Formatted),
		House:    HouseOf(e.House),
	}
}

func toTransit(e domain.Entity, _ int) TransitPlacement {
	return TransitPlacement{
		Name:     e.Label(),
		Symbol:   domain.Glyph(e.Label()),
		Sign:     string(e.Position.Sign),
		Position: TrimPosition(e.Position.Formatted),
	}
}

// TransitDigest is the scheduled transit summary published for a profile.
type TransitDigest struct {
	ProfileID string       `json:"profile_id"`
	TransitAt string       `json:"transit_at"`
	Aspects   []AspectView `json:"aspects"`
}

// NewTransitDigest builds the digest payload for one profile.
func NewTransitDigest(profileID string, now time.Time, aspects []domain.Aspect) TransitDigest {
	return TransitDigest{
		ProfileID: profileID,
		TransitAt: now.UTC().Format(TransitDateLayout),
		Aspects:   Aspects(aspects),
	}
}
