package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/google/uuid"
)

// ProfileRepository handles PostgreSQL operations for birth profiles
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, name, year, month, day, hour, minute, second,
		       period, timezone, latitude, longitude, created_at`

// Create inserts a profile, assigning an ID when missing
func (r *ProfileRepository) Create(ctx context.Context, p *domain.BirthProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO birth_profiles (
			id, name, year, month, day, hour, minute, second,
			period, timezone, latitude, longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Name,
		p.Moment.Year,
		p.Moment.Month,
		p.Moment.Day,
		p.Moment.Hour,
		p.Moment.Minute,
		p.Moment.Second,
		string(p.Moment.Period),
		p.Moment.Zone,
		p.Location.Latitude,
		p.Location.Longitude,
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to create birth profile: %w", err)
	}

	p.CreatedAt = createdAt
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.BirthProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM birth_profiles
		WHERE id = $1
	`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get birth profile: %w", err)
	}
	return p, nil
}

// List returns profiles ordered by creation time, newest first.
// A non-positive limit returns every profile.
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]*domain.BirthProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM birth_profiles
		ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list birth profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.BirthProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan birth profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate birth profiles: %w", err)
	}
	return profiles, nil
}

// Delete removes a profile by ID
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM birth_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete birth profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete birth profile: %w", err)
	}
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.BirthProfile, error) {
	var p domain.BirthProfile
	var period, zone sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Moment.Year,
		&p.Moment.Month,
		&p.Moment.Day,
		&p.Moment.Hour,
		&p.Moment.Minute,
		&p.Moment.Second,
		&period,
		&zone,
		&p.Location.Latitude,
		&p.Location.Longitude,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Moment.Period = domain.Period(period.String)
	p.Moment.Zone = zone.String
	return &p, nil
}
