// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

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

	"github.com/joho/godotenv"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/bookwise/internal/api"
	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/embedding"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
	"github.com/tomtom215/bookwise/internal/supervisor"
	"github.com/tomtom215/bookwise/internal/supervisor/services"
)

func main() {
	// A missing .env is normal in containers.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Str("kind", string(recommend.KindOf(err))).Msg("Bookwise exited with error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Bookwise stopped")
}

// run prepares the catalog, then serves until ctx is canceled. The first
// signal cancels ctx; the catalog embedding is aborted if it is still running.
func run(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("embeddings", cfg.Catalog.EmbeddingsPath).
		Str("provider", cfg.Embedding.Provider).
		Msg("Starting Bookwise")

	models, err := embedding.New(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("configure embedding model: %w", err)
	}
	defer func() {
		if err := models.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing embedding cache")
		}
	}()

	boot, err := recommend.Bootstrap(ctx, cfg, models)
	if err != nil {
		return fmt.Errorf("prepare catalog: %w", err)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(boot.Service, cfg.Server.Timeout)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	if cache := models.Cache(); cache != nil {
		tree.AddMaintenanceService(services.NewCacheGCService(cache, services.CacheGCConfig{}))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().
		Str("addr", server.Addr).
		Int("books", boot.Service.Len()).
		Str("source", boot.Source).
		Msg("Serving recommendations")

	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
