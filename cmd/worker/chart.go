package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
)

// chartFile is the on-disk request: the same flat fields the HTTP API takes.
type chartFile struct {
	domain.Moment
	domain.Location
}

// RunChart computes a chart for the request file and writes the response JSON to w.
func RunChart(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: worker chart <request.json>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req chartFile
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.App.Environment, "warn")
	if err != nil {
		return err
	}
	defer lg.Sync()

	svcs, err := bootstrap.BuildServices(cfg, nil, nil, lg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()
	resp, err := svcs.Charts.Calculate(ctx, domain.CalculationRequest{Moment: req.Moment, Location: req.Location})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
