package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/account"
	httpapi "github.com/i474232898/travel-weather/internal/api/http"
	"github.com/i474232898/travel-weather/internal/auth"
	"github.com/i474232898/travel-weather/internal/cache"
	"github.com/i474232898/travel-weather/internal/config"
	"github.com/i474232898/travel-weather/internal/scheduler"
	"github.com/i474232898/travel-weather/internal/store"
	"github.com/i474232898/travel-weather/internal/weather"
	"github.com/i474232898/travel-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client for outbound provider calls.
	httpCfg := providers.NewHTTPClientConfig(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.ProviderRPS)

	var geocoder weather.Geocoder = providers.NewOpenMeteoGeocoder(httpCfg)
	if cfg.GoogleGeocodingAPIKey != "" {
		log.Info("using Google geocoding")
		// The geocoding library only talks through the default client.
		http.DefaultClient.Timeout = cfg.HTTPTimeout
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocodingAPIKey, httpCfg)
	}

	// Forecast cache: shared when redis is configured, in-process otherwise.
	var forecastCache weather.ForecastCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		forecastCache = cache.NewRedis(rdb, cfg.ForecastCacheTTL)
	} else {
		forecastCache = cache.NewMemory(cfg.ForecastCacheSize, cfg.ForecastCacheTTL)
	}

	weatherSvc := weather.NewService(providers.NewOpenMeteoProvider(httpCfg), geocoder, forecastCache)

	// User store.
	var users account.Store
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		log.Info("no database configured, running with in-memory user store")
		users = store.NewMemoryStore()
	default:
		sqlStore, err := store.OpenSQLStore(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open user store: %v", err)
		}
		defer sqlStore.Close()
		users = sqlStore
	}
	accounts := account.NewService(users)

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("failed to configure tokens: %v", err)
	}

	// Scheduler that periodically checks weather alerts.
	sched := scheduler.New(cfg.AlertCheckCron, accounts, weatherSvc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "travel-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "travel-weather",
			"timestamp": time.Now().UTC(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, weatherSvc, accounts, tokens)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()
	log.WithField("port", cfg.Port).Info("server running")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
