package main

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/bootstrap"
	cronjob "github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/cron"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
)

// RunDigest performs one transit digest pass and exits.
func RunDigest() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer lg.Sync()

	ctx := context.Background()
	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("digest needs the database; DB_ENABLED is false")
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	svcs, err := bootstrap.BuildServices(cfg, db, rdb, lg)
	if err != nil {
		return err
	}

	stats, err := cronjob.NewDigestScheduler(svcs.Digest, cfg.Digest.Schedule, cfg.Digest.Timeout, lg).RunOnce(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("profiles=%d published=%d failed=%d\n", stats.Profiles, stats.Published, stats.Failed)
	return nil
}
