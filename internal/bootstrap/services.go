package bootstrap

import (
	"database/sql"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/aspects"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/chart"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/ephemeris"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/repository"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/service"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// Services is the wired application layer.
type Services struct {
	Charts   *service.ChartService
	Profiles *service.ProfileService
	Digest   *service.DigestService
	Digests  *repository.DigestPublisher
}

// BuildServices wires the chart pipeline and its stores. db and rdb may be
// nil; the features that need them are then left out.
func BuildServices(cfg *config.Config, db *sql.DB, rdb *redis.Client, log *logger.Logger) (*Services, error) {
	orbs, err := cfg.Orbs()
	if err != nil {
		return nil, err
	}

	builder := chart.NewBuilder(ephemeris.NewKepler(), cfg.Chart.HouseSystem)
	detector := aspects.NewDetector(orbs)

	var receipts service.ReceiptStore
	if rdb != nil {
		receipts = repository.NewReceiptRepository(rdb)
	}
	charts := service.NewChartService(builder, detector, receipts, log)

	out := &Services{Charts: charts}
	if rdb != nil {
		out.Digests = repository.NewDigestPublisher(rdb)
	}
	if db != nil {
		profiles := repository.NewProfileRepository(db)
		out.Profiles = service.NewProfileService(profiles, charts)
		if rdb != nil {
			out.Digest = service.NewDigestService(profiles, charts, out.Digests, log)
			out.Digest.SetParallelism(cfg.Digest.Parallelism)
		}
	}
	return out, nil
}
