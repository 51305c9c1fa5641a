package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/storage/postgres"
	"github.com/redis/go-redis/v9"
)

// OpenDB connects to postgres, or returns nil when the database is disabled.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return postgres.NewConnection(ctx, cfg)
}

// OpenRedis connects to redis and fails fast when it is unreachable.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
