package cronjob

import (
	"context"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/service"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// DigestRunner performs one transit digest pass.
type DigestRunner interface {
	Run(ctx context.Context) (service.DigestStats, error)
}

// DigestScheduler runs the transit digest on a cron schedule with a
// seconds field. Overlapping runs are skipped.
type DigestScheduler struct {
	runner   DigestRunner
	schedule string
	timeout  time.Duration
	log      *logger.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDigestScheduler creates a scheduler. timeout bounds a single pass;
// zero means no bound.
func NewDigestScheduler(runner DigestRunner, schedule string, timeout time.Duration, log *logger.Logger) *DigestScheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &DigestScheduler{
		runner:   runner,
		schedule: schedule,
		timeout:  timeout,
		log:      log,
	}
}

// Start registers the job and starts the cron loop.
func (s *DigestScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s.schedule, func() { s.RunOnce(runCtx) }); err != nil {
		cancel()
		s.log.Error("failed to create digest cron job", "schedule", s.schedule, "error", err)
		return err
	}

	s.cron = c
	s.cancel = cancel
	c.Start()
	s.log.Info("digest scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling, cancels a running pass and waits for it to return
// or for ctx to end.
func (s *DigestScheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	done := c.Stop().Done()
	cancel()

	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("digest scheduler stop timed out")
	}
}

// RunOnce executes a single pass immediately.
func (s *DigestScheduler) RunOnce(ctx context.Context) (service.DigestStats, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stats, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error("transit digest pass failed", "error", err)
	}
	return stats, err
}
