package service

import (
	"context"
	"strings"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/format"
	"github.com/google/uuid"
)

// ProfileStore persists birth profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *domain.BirthProfile) error
	GetByID(ctx context.Context, id string) (*domain.BirthProfile, error)
	List(ctx context.Context, limit int) ([]*domain.BirthProfile, error)
	Delete(ctx context.Context, id string) error
}

// ProfileService handles saved birth data
type ProfileService struct {
	store  ProfileStore
	charts *ChartService
}

// NewProfileService creates a new ProfileService
func NewProfileService(store ProfileStore, charts *ChartService) *ProfileService {
	return &ProfileService{store: store, charts: charts}
}

// Create validates the birth inputs the same way a calculation does and
// stores the profile.
func (s *ProfileService) Create(ctx context.Context, req *domain.CreateProfileRequest) (*domain.BirthProfile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.InvalidInputError{Field: "name", Reason: "is required"}
	}
	if len(name) > 120 {
		return nil, &domain.InvalidInputError{Field: "name", Reason: "must be at most 120 characters"}
	}
	b := s.charts.Builder()
	if err := b.ValidateLocation(req.Location); err != nil {
		return nil, err
	}
	if _, err := b.ValidateMoment(req.Moment); err != nil {
		return nil, err
	}

	profile := &domain.BirthProfile{
		Name:     name,
		Moment:   req.Moment,
		Location: req.Location,
	}
	if err := s.store.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get retrieves a profile by ID
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.BirthProfile, error) {
	if !validProfileID(id) {
		return nil, domain.ErrProfileNotFound
	}
	return s.store.GetByID(ctx, id)
}

// List returns up to limit profiles, newest first
func (s *ProfileService) List(ctx context.Context, limit int) ([]*domain.BirthProfile, error) {
	return s.store.List(ctx, limit)
}

// Delete removes a profile
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if !validProfileID(id) {
		return domain.ErrProfileNotFound
	}
	return s.store.Delete(ctx, id)
}

// Transits calculates the current transits for a saved profile.
func (s *ProfileService) Transits(ctx context.Context, id string) (*format.Response, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.charts.Calculate(ctx, p.CalculationRequest())
}

// Profile ids are UUIDs; anything else cannot name a stored profile.
func validProfileID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
