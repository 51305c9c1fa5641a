package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/aspects"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Chart    ChartConfig
	Digest   DigestConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type ChartConfig struct {
	HouseSystem domain.HouseSystem
	OrbSpec     string
	OrbFile     string
}

type DigestConfig struct {
	Schedule    string
	Parallelism int
	Timeout     time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
			CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", true),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "astro"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Chart: ChartConfig{
			HouseSystem: domain.HouseSystem(getEnv("HOUSE_SYSTEM", string(domain.HouseSystemWholeSign))),
			OrbSpec:     getEnv("ASPECT_ORBS", ""),
			OrbFile:     getEnv("ASPECT_ORBS_FILE", ""),
		},
		Digest: DigestConfig{
			Schedule:    getEnv("DIGEST_SCHEDULE", "0 0 6 * * *"),
			Parallelism: getEnvAsInt("DIGEST_PARALLELISM", 4),
			Timeout:     getEnvAsDuration("DIGEST_TIMEOUT", 30*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Enabled && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if !c.Chart.HouseSystem.Valid() {
		return fmt.Errorf("HOUSE_SYSTEM must be %q or %q", domain.HouseSystemWholeSign, domain.HouseSystemEqual)
	}

	if _, err := c.Orbs(); err != nil {
		return err
	}

	if c.Digest.Timeout < 0 {
		return fmt.Errorf("DIGEST_TIMEOUT must not be negative")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Digest.Schedule); err != nil {
		return fmt.Errorf("DIGEST_SCHEDULE: %w", err)
	}

	return nil
}

// Orbs builds the aspect orb table: defaults, then the YAML file, then
// ASPECT_ORBS entries.
func (c *Config) Orbs() (aspects.OrbTable, error) {
	table := aspects.DefaultOrbs()
	if c.Chart.OrbFile != "" {
		overrides, err := aspects.LoadOrbFile(c.Chart.OrbFile)
		if err != nil {
			return nil, fmt.Errorf("ASPECT_ORBS_FILE: %w", err)
		}
		if table, err = table.With(overrides); err != nil {
			return nil, fmt.Errorf("ASPECT_ORBS_FILE: %w", err)
		}
	}
	if c.Chart.OrbSpec != "" {
		overrides, err := aspects.ParseOrbs(c.Chart.OrbSpec)
		if err != nil {
			return nil, fmt.Errorf("ASPECT_ORBS: %w", err)
		}
		if table, err = table.With(overrides); err != nil {
			return nil, fmt.Errorf("ASPECT_ORBS: %w", err)
		}
	}
	return table, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
