package bootstrap

import (
	"context"
	"database/sql"
	"time"

	httpapi "github.com/GoSim-25-26J-441/astro-transit-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/api/http/middleware"
	nthttp "github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/http"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/platform/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *sql.DB
	Redis          *redis.Client
	Services       *Services
	Logger         *logger.Logger
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.CORS(dep.CORSOrigins))

	r.HandleMethodNotAllowed = true
	r.NoMethod(nthttp.MethodNotAllowed)

	var dbPing, redisPing httpapi.Pinger
	if dep.DB != nil {
		dbPing = httpapi.PingFunc(dep.DB.PingContext)
	}
	if dep.Redis != nil {
		redisPing = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPing, redisPing)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	chartHandler := nthttp.New(dep.Services.Charts, dep.Services.Profiles, dep.RequestTimeout, dep.Logger)
	if dep.Services.Digests != nil {
		chartHandler.WithDigestStream(dep.Services.Digests)
	}
	chartHandler.Register(api, middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))

	return r
}
