// Package main is the entry point for the spotfly flight search service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mthtitumir/spotfly/internal/adapter/amadeus"
	flighthttp "github.com/mthtitumir/spotfly/internal/adapter/http"
	"github.com/mthtitumir/spotfly/internal/adapter/http/middleware"
	"github.com/mthtitumir/spotfly/internal/adapter/store"
	"github.com/mthtitumir/spotfly/internal/config"
	"github.com/mthtitumir/spotfly/internal/infrastructure/logger"
	"github.com/mthtitumir/spotfly/internal/infrastructure/timeutil"
	"github.com/mthtitumir/spotfly/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "spotfly",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	if cfg.Amadeus.APIKey == "" {
		log.Warn().Msg("Amadeus credentials not configured; flight search will answer 503")
	}

	// Offer source.
	source := amadeus.NewClient(
		cfg.Amadeus.BaseURL,
		cfg.Amadeus.APIKey,
		cfg.Amadeus.APISecret,
		amadeus.WithHTTPClient(&http.Client{Timeout: cfg.Amadeus.Timeout}),
		amadeus.WithLogger(log.WithComponent("amadeus")),
	)

	// Recent-search store: Redis when configured, otherwise in-memory.
	recents := buildRecentStore(cfg, log)

	flightUseCase := usecase.NewFlightSearchUseCase(source, recents, log,
		usecase.WithDefaults(cfg.Search.MaxResults, cfg.Search.FeaturedCount))
	flightHandler := flighthttp.NewFlightHandler(flightUseCase)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)
	flighthttp.RegisterRoutes(e, flightHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildRecentStore connects to Redis when an address is configured, falling
// back to the in-memory store on connection failure so the service still
// starts.
func buildRecentStore(cfg *config.Config, log *logger.Logger) store.RecentSearches {
	if cfg.Redis.Addr == "" {
		return store.NewMemoryStore(timeutil.NewRealClock())
	}

	client, err := store.Connect(context.Background(), cfg.Redis.Addr)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).
			Msg("Redis unavailable, keeping recent searches in memory")
		return store.NewMemoryStore(timeutil.NewRealClock())
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("Recent searches stored in Redis")
	return store.NewRedisStore(client, timeutil.NewRealClock(), cfg.Redis.TTL)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
