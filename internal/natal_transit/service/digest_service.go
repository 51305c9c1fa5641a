package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/format"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

const defaultDigestParallelism = 4

// DigestPublisher delivers a digest for one profile.
type DigestPublisher interface {
	Publish(ctx context.Context, profileID string, payload any) (int64, error)
}

// DigestStats summarizes one digest pass.
type DigestStats struct {
	Profiles  int
	Published int
	Failed    int
}

// DigestService recomputes transits for every saved profile and publishes them.
type DigestService struct {
	profiles    ProfileStore
	charts      *ChartService
	publisher   DigestPublisher
	log         *logger.Logger
	parallelism int
}

// NewDigestService creates a new DigestService
func NewDigestService(profiles ProfileStore, charts *ChartService, publisher DigestPublisher, log *logger.Logger) *DigestService {
	if log == nil {
		log = logger.Nop()
	}
	return &DigestService{
		profiles:    profiles,
		charts:      charts,
		publisher:   publisher,
		log:         log,
		parallelism: defaultDigestParallelism,
	}
}

// SetParallelism bounds how many profiles are computed at once.
func (s *DigestService) SetParallelism(n int) {
	if n > 0 {
		s.parallelism = n
	}
}

// Run performs one pass. Failures for single profiles are logged and
// skipped; only a failure to list profiles aborts the pass.
func (s *DigestService) Run(ctx context.Context) (DigestStats, error) {
	started := time.Now()
	profiles, err := s.profiles.List(ctx, 0)
	if err != nil {
		return DigestStats{}, err
	}

	var published, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, p := range profiles {
		g.Go(func() error {
			if err := s.publishOne(gctx, p); err != nil {
				failed.Add(1)
				s.log.Warn("transit digest skipped", "profile_id", p.ID, "error", err)
				return nil
			}
			published.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	stats := DigestStats{
		Profiles:  len(profiles),
		Published: int(published.Load()),
		Failed:    int(failed.Load()),
	}
	s.log.Info("transit digest pass finished",
		"profiles", stats.Profiles,
		"published", stats.Published,
		"failed", stats.Failed,
		"duration", time.Since(started))
	return stats, ctx.Err()
}

func (s *DigestService) publishOne(ctx context.Context, p *domain.BirthProfile) error {
	res, err := s.charts.Compute(ctx, p.CalculationRequest())
	if err != nil {
		return err
	}
	digest := format.NewTransitDigest(p.ID, res.Now, res.Aspects)
	_, err = s.publisher.Publish(ctx, p.ID, digest)
	return err
}
