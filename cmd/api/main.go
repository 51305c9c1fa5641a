package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/bootstrap"
	cronjob "github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/cron"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
)

const serviceName = "astro-transit-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		lg.Fatal("database unavailable", "error", err)
	}
	if db != nil {
		defer db.Close()
	} else {
		lg.Warn("database disabled, profile routes not registered")
	}

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// Receipts and digests are optional; calculations still work.
		lg.Warn("redis unavailable, receipts and digests disabled", "addr", cfg.Redis.Addr, "error", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	svcs, err := bootstrap.BuildServices(cfg, db, rdb, lg)
	if err != nil {
		lg.Fatal("wiring failed", "error", err)
	}

	var scheduler *cronjob.DigestScheduler
	if svcs.Digest != nil {
		scheduler = cronjob.NewDigestScheduler(svcs.Digest, cfg.Digest.Schedule, cfg.Digest.Timeout, lg)
		if err := scheduler.Start(); err != nil {
			lg.Fatal("digest scheduler", "error", err)
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DB:             db,
		Redis:          rdb,
		Services:       svcs,
		Logger:         lg,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CORSOrigins:    cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("listening", "port", cfg.Server.Port, "env", cfg.App.Environment, "house_system", cfg.Chart.HouseSystem)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", "error", err)
	}
}
