package main

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/db"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/astro-transit-backend/migrations"
)

// RunMigrate applies pending schema migrations.
func RunMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, postgres.URL(&cfg.Database), db.Options{MaxConns: 2})
	if err != nil {
		return err
	}
	defer conn.Close()

	applied, err := db.Migrate(ctx, conn.Pool, migrations.FS)
	for _, v := range applied {
		fmt.Println("applied", v)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("schema up to date")
	}
	return nil
}
