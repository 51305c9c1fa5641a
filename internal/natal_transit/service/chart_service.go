package service

import (
	"context"
	"errors"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/aspects"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/chart"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/format"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/houses"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// ReceiptStore persists calculation summaries.
type ReceiptStore interface {
	Save(ctx context.Context, receipt *domain.CalculationReceipt) error
	Get(ctx context.Context, id string) (*domain.CalculationReceipt, error)
}

// Result is a completed calculation before presentation.
type Result struct {
	Natal   *domain.Chart
	Transit *domain.Chart
	Aspects []domain.Aspect
	Now     time.Time
}

// ChartService handles natal/transit calculations
type ChartService struct {
	builder  *chart.Builder
	detector *aspects.Detector
	receipts ReceiptStore
	log      *logger.Logger
	now      func() time.Time
}

// NewChartService creates a new ChartService. receipts may be nil.
func NewChartService(builder *chart.Builder, detector *aspects.Detector, receipts ReceiptStore, log *logger.Logger) *ChartService {
	if log == nil {
		log = logger.Nop()
	}
	return &ChartService{
		builder:  builder,
		detector: detector,
		receipts: receipts,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the source of "now" for transit charts.
func (s *ChartService) WithClock(now func() time.Time) *ChartService {
	s.now = now
	return s
}

// Builder exposes the chart builder for input validation.
func (s *ChartService) Builder() *chart.Builder {
	return s.builder
}

// Calculate builds the natal chart for req, the transit chart for the
// current instant at the same location, and the aspects between them.
// It either returns a full response or an error, never a partial result.
func (s *ChartService) Calculate(ctx context.Context, req domain.CalculationRequest) (*format.Response, error) {
	res, err := s.Compute(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recordReceipt(ctx, res)

	resp := format.NewResponse(res.Natal, res.Transit, res.Aspects, res.Now)
	return &resp, nil
}

// Compute runs the pipeline without formatting or receipts.
func (s *ChartService) Compute(ctx context.Context, req domain.CalculationRequest) (*Result, error) {
	now := s.now().UTC()

	// Reject bad input before either build starts any computation.
	if err := s.builder.ValidateLocation(req.Location); err != nil {
		s.logFailure(ctx, err)
		return nil, err
	}
	if _, err := s.builder.ValidateMoment(req.Moment); err != nil {
		s.logFailure(ctx, err)
		return nil, err
	}

	var natal, transit *domain.Chart
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.builder.Build(gctx, req.Moment, req.Location)
		if err != nil {
			return err
		}
		natal = c
		return nil
	})
	g.Go(func() error {
		c, err := s.builder.BuildAt(gctx, now, req.Location)
		if err != nil {
			return err
		}
		transit = c
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logFailure(ctx, err)
		return nil, err
	}

	natal, err := resolveHouses(natal)
	if err != nil {
		s.logFailure(ctx, err)
		return nil, err
	}

	return &Result{
		Natal:   natal,
		Transit: transit,
		Aspects: s.detector.Detect(transit, natal),
		Now:     now,
	}, nil
}

// Receipt returns a stored calculation summary.
func (s *ChartService) Receipt(ctx context.Context, id string) (*domain.CalculationReceipt, error) {
	if s.receipts == nil {
		return nil, domain.ErrReceiptNotFound
	}
	return s.receipts.Get(ctx, id)
}

// resolveHouses assigns every angle a house from the cusps, and every point
// the provider left without one.
func resolveHouses(c *domain.Chart) (*domain.Chart, error) {
	out := *c

	angles := make([]domain.Entity, len(c.Angles))
	for i, a := range c.Angles {
		a.House = nil
		angles[i] = a
	}
	var err error
	if out.Angles, err = houses.Assign(angles, c.Cusps); err != nil {
		return nil, err
	}
	if out.Points, err = houses.Assign(c.Points, c.Cusps); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ChartService) recordReceipt(ctx context.Context, res *Result) {
	if s.receipts == nil {
		return
	}
	natal := res.Natal
	receipt := &domain.CalculationReceipt{
		RequestID:   RequestID(ctx),
		CreatedAt:   res.Now,
		NatalAt:     natal.Instant,
		TransitAt:   res.Now,
		HouseSystem: natal.HouseSystem,
		EntityCount: len(natal.Bodies) + len(natal.Points) + len(natal.Angles),
		AspectCount: len(res.Aspects),
	}
	if err := s.receipts.Save(ctx, receipt); err != nil {
		s.log.Warn("failed to store calculation receipt", "request_id", receipt.RequestID, "error", err)
		return
	}
	s.log.Debug("calculation receipt stored", "receipt_id", receipt.ID, "request_id", receipt.RequestID)
}

func (s *ChartService) logFailure(ctx context.Context, err error) {
	rid := RequestID(ctx)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		s.log.Info("rejected chart input", "request_id", rid, "error", err)
	case errors.Is(err, domain.ErrDataConsistency):
		s.log.Error("chart data consistency violation", "request_id", rid, "error", err)
	case errors.Is(err, domain.ErrEphemeris):
		s.log.Error("ephemeris failure", "request_id", rid, "error", err)
	default:
		s.log.Warn("chart calculation aborted", "request_id", rid, "error", err)
	}
}
