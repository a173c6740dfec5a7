// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
	"github.com/tomtom215/reelrank/internal/tmdb"
)

//nolint:gocyclo // Sequential startup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("driver", cfg.Database.Driver).
		Str("poster_cache", cfg.PosterCache.Backend).
		Msg("Starting ReelRank")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ARTIFACTS ===

	store, err := artifacts.Load(ctx, cfg.Artifacts.ManifestPath)
	if err != nil {
		logging.Fatal().Err(err).Str("manifest", cfg.Artifacts.ManifestPath).Msg("Failed to load artifacts")
	}
	metrics.ArtifactItems.Set(float64(store.Len()))

	// === STORAGE ===

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open storage")
	}
	defer storage.close()

	// === POSTERS ===

	posterCache, err := cache.New(cfg.PosterCache)
	if err != nil {
		logging.Warn().Err(err).Str("backend", cfg.PosterCache.Backend).Msg("Poster cache unavailable, continuing without cache")
		posterCache = nil
	} else {
		defer func() {
			if err := posterCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing poster cache")
			}
		}()
	}
	images := tmdb.NewClient(cfg.TMDB, posterCache)
	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY not set, every poster resolves to the placeholder")
	}

	// === SERVICES ===

	recCfg := recommend.Config{
		Workers:           cfg.Recommend.Workers,
		Seed:              cfg.Recommend.Seed,
		HistorySeedSize:   cfg.Recommend.HistorySeedSize,
		EnrichConcurrency: cfg.Recommend.EnrichConcurrency,
	}
	recommender, err := recommend.NewService(store, storage.interactions, images, recCfg, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation service")
	}

	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create JWT manager")
	}
	accounts := auth.NewService(storage.users, tokens, cfg.Security.MinPasswordLength)
	authMW := auth.NewMiddleware(tokens, cfg.Security.CookieName, api.WriteUnauthorized)

	// === HTTP ===

	handler := api.NewHandler(api.HandlerDeps{
		Recommender:   recommender,
		Accounts:      accounts,
		Database:      storage.pinger,
		ArtifactItems: store.Len(),
		Cookie: api.CookieSettings{
			Name:   authMW.CookieName(),
			Secure: cfg.Security.SecureCookies,
			MaxAge: tokens.Timeout(),
		},
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:    cfg.Security.CORSOrigins,
		CORSMaxAge:            86400,
		RateLimitRequests:     cfg.Security.RateLimitReqs,
		RateLimitWindow:       cfg.Security.RateLimitWindow,
		RateLimitDisabled:     cfg.Security.RateLimitDisabled,
		AuthRateLimitRequests: authRateLimit(cfg.Security.RateLimitReqs),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, authMW, chiMW).Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewStoreMonitorService(storage.pinger, 30*time.Second, logging.WithComponent("supervisor")))
	if memCache, ok := posterCache.(*cache.MemoryStore); ok {
		tree.AddDataService(services.NewCacheSweepService(memCache, "poster", 10*time.Minute, logging.WithComponent("supervisor")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("ReelRank stopped")
}

// authRateLimit derives the signup/login budget from the general one.
func authRateLimit(general int) int {
	if general <= 0 {
		return 0
	}
	limit := general / 10
	if limit < 5 {
		limit = 5
	}
	return limit
}
