package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/tdhoang/weather-insight/internal/api/http"
	"github.com/tdhoang/weather-insight/internal/config"
	"github.com/tdhoang/weather-insight/internal/observability"
	"github.com/tdhoang/weather-insight/internal/scheduler"
	"github.com/tdhoang/weather-insight/internal/store"
	"github.com/tdhoang/weather-insight/internal/weather"
	"github.com/tdhoang/weather-insight/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env if present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxDays)

	// CSV snapshot cache so a restart does not cost a refetch.
	var cache weather.Cache
	if cfg.CacheDir != "" {
		fileCache, err := store.NewFileCache(cfg.CacheDir)
		if err != nil {
			log.Fatalf("failed to create file cache: %v", err)
		}
		cache = fileCache
	}

	// Open-Meteo serves both weather data and geocoding, no API key needed.
	provider := providers.NewOpenMeteo(httpClient)

	metrics := observability.New()

	// Core service orchestrating provider, store, and analysis.
	service := weather.NewService(weather.ServiceConfig{
		Store:       memStore,
		Cache:       cache,
		Provider:    provider,
		Geocoder:    provider,
		Metrics:     metrics,
		Logger:      slogger,
		HistoryDays: cfg.HistoryDays,
	})

	// Scheduler that periodically refreshes tracked locations.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service, slogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-insight",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-insight",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
