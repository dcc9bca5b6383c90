// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/otto/internal/api"
	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/supervisor"
	"github.com/tomtom215/otto/internal/supervisor/services"
	"github.com/tomtom215/otto/internal/vehicle"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const httpShutdownTimeout = 10 * time.Second

//nolint:gocyclo // sequential wiring
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("tracking_store", cfg.Tracking.Store).
		Str("cache_store", cfg.Recommend.CacheStore).
		Str("events_transport", cfg.Events.Transport).
		Bool("openai", cfg.OpenAI.Enabled()).
		Msg("Starting otto")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rules, err := loadRules(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Comparison.RulesPath).Msg("Failed to load comparison rules")
	}

	catalog := vehicle.NewCatalog(vehicle.SampleVehicles()...)
	market := initMarket(cfg, rules)

	evts, err := initEvents(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer evts.Close()

	trk, err := initTracking(cfg, catalog, market, evts.Bus)
	if err != nil {
		evts.Close()
		logging.Fatal().Err(err).Msg("Failed to initialize tracking")
	}
	defer trk.Close()

	// Activity-based trending replaces newest-first ordering in the catalog.
	catalog.SetTrendingProvider(trk.Signals)

	ai := initAI(cfg)

	comparer := comparison.NewEngine(catalog, comparison.Options{
		Rules:            rules,
		Market:           market,
		Embedder:         ai.Embedder,
		EmbeddingTimeout: cfg.Comparison.EmbeddingTimeout,
		Logger:           logging.WithComponent("comparison"),
	})

	rec, err := initRecommend(ctx, cfg, catalog, trk, ai, evts.Bus)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer rec.Close()

	router, err := evts.Consumers(rec.Engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event router")
	}

	readiness := map[string]api.ReadinessCheck{
		"tracking": func(ctx context.Context) error {
			_, err := trk.Tracker.ActiveSessions(ctx)
			return err
		},
	}
	if rec.Ping != nil {
		readiness["cache"] = rec.Ping
	}
	if evts.Ready != nil {
		readiness["events"] = evts.Ready
	}

	handler := api.NewHandler(api.Dependencies{
		Comparer:       comparer,
		Recommender:    rec.Engine,
		Tracker:        trk.Tracker,
		Vehicles:       catalog,
		Readiness:      readiness,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logging.WithComponent("api"),
		Version:        version,
	})

	routerCfg := api.DefaultRouterConfig()
	routerCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	routerCfg.RateLimitRequests = cfg.Security.RateLimitRequests
	routerCfg.RateLimitWindow = cfg.Security.RateLimitWindow

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler, routerCfg),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  httpShutdownTimeout,
	})

	tree.AddStorageService(services.NewSessionCleanupService(
		trk.Tracker, cfg.Tracking.CleanupInterval, logging.WithComponent("tracking")))
	if trk.DB != nil {
		tree.AddStorageService(services.NewValueLogGCService(trk.DB, 10*time.Minute, logging.WithComponent("tracking")))
	}
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree stopped")
		}
	}
	stop()

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("otto stopped")
}
