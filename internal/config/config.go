package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Database drivers accepted in DATABASE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration
	// ProviderRPS caps outbound provider requests per second (0 = unlimited).
	ProviderRPS float64

	// Forecast cache.
	ForecastCacheTTL  time.Duration
	ForecastCacheSize int
	RedisAddr         string // shared cache when set, in-process otherwise
	RedisPassword     string

	// Persistence.
	DatabaseDriver string
	DatabaseURL    string

	// Auth.
	JWTSecret string
	JWTTTL    time.Duration

	// AlertCheckCron is the cron expression of the alert check job; "off"
	// disables it.
	AlertCheckCron string

	GoogleGeocodingAPIKey string

	LogLevel log.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.ProviderRPS, err = strconv.ParseFloat(getenvDefault("PROVIDER_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_RPS: %w", err)
	}

	if cfg.ForecastCacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	cfg.ForecastCacheSize = getenvInt("FORECAST_CACHE_SIZE", 1000)
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.DatabaseDriver = strings.ToLower(getenvDefault("DATABASE_DRIVER", DriverMemory))
	switch cfg.DatabaseDriver {
	case DriverMemory:
	case DriverSQLite:
		cfg.DatabaseURL = getenvDefault("DATABASE_URL", "travel-weather.db")
	case DriverPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("invalid DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTTTL, err = getenvDuration("JWT_TTL", "168h"); err != nil {
		return nil, err
	}

	cfg.AlertCheckCron = getenvDefault("ALERT_CHECK_CRON", "0 * * * *")
	if strings.EqualFold(cfg.AlertCheckCron, "off") {
		cfg.AlertCheckCron = ""
	}
	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")

	cfg.LogLevel, err = log.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
