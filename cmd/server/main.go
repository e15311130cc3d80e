// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package main is the entry point for the Vestiarium server application.
//
// Vestiarium is a self-hosted virtual try-on service for fashion retail. It
// composites a person photo with clothing item photos into a single try-on
// image using Gemini image generation, analyzes the result with Azure OpenAI
// vision, and recommends matching products from a local catalog.
//
// # Application Architecture
//
// The server implements a layered architecture with Suture v4 process
// supervision:
//
//	RootSupervisor ("vestiarium")
//	├── MaintenanceSupervisor ("maintenance-layer")
//	│   └── Cache maintenance (expired-entry sweeps, uptime metric)
//	└── APISupervisor ("api-layer")
//	    └── HTTP Server (REST API with Swagger documentation)
//
// Component initialization order:
//
//  1. Configuration: Koanf v2 with environment variables and config files
//  2. Logging: zerolog with JSON/console output modes
//  3. Catalog: product catalog loaded from JSON (non-fatal when missing)
//  4. AI clients: Gemini generation with key rotation, Azure OpenAI vision
//  5. Recommendation engine: style analysis with keyword fallback chain
//  6. Supervisor tree: Suture v4 process supervision
//  7. HTTP Server: Chi router with middleware stack
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Degraded Modes
//
// Both AI providers are optional. The server starts without them and degrades
// per feature instead of failing:
//   - No GEMINI_API_KEY: try-on generation returns 503, everything else works
//   - No AZURE_OPENAI_ENDPOINT/KEY: recommendations skip vision analysis and
//     fall back to keyword scoring against the catalog
//   - No catalog file: recommendations return empty results and
//     /health/ready reports not-ready until a catalog is provided
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops cache maintenance sweeps
//
// # Example Usage
//
// Development (keyword recommendations only, no AI providers):
//
//	export CATALOG_PATH=data/catalog.json
//	./vestiarium
//
// Full AI pipeline:
//
//	export GEMINI_API_KEY=your-gemini-key
//	export AZURE_OPENAI_ENDPOINT=https://your-resource.openai.azure.com
//	export AZURE_OPENAI_KEY=your-azure-key
//	export AZURE_OPENAI_DEPLOYMENT_ID=gpt-4o
//	./vestiarium
//
// Multiple Gemini keys (rotation on quota exhaustion):
//
//	export GEMINI_API_KEYS=key-1,key-2,key-3
//	./vestiarium
//
// Docker:
//
//	docker run -d \
//	  -e GEMINI_API_KEY=your-gemini-key \
//	  -p 3000:3000 \
//	  ghcr.io/tomtom215/vestiarium
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/vestiarium/docs" // Import generated swagger docs
	"github.com/tomtom215/vestiarium/internal/api"
	"github.com/tomtom215/vestiarium/internal/cache"
	"github.com/tomtom215/vestiarium/internal/catalog"
	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/gemini"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/recommend"
	"github.com/tomtom215/vestiarium/internal/supervisor"
	"github.com/tomtom215/vestiarium/internal/supervisor/services"
	"github.com/tomtom215/vestiarium/internal/vision"
)

// Proxy image cache sizing. Entries expire on TTL; the maintenance service
// sweeps expired entries and the byte budget evicts LRU entries beyond it.
const (
	imageCacheMaxBytes = 64 << 20
	imageCacheTTL      = 10 * time.Minute
)

func main() {
	startedAt := time.Now()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Vestiarium with supervisor tree")

	// Log provider status. Key material never reaches the log; only counts.
	if cfg.Gemini.Configured() {
		logging.Info().
			Int("api_keys", len(cfg.Gemini.KeyRing())).
			Str("model", cfg.Gemini.Model).
			Msg("Gemini try-on generation enabled")
	} else {
		logging.Warn().Msg("GEMINI_API_KEY not set - try-on generation disabled")
	}
	if cfg.Azure.Configured() {
		logging.Info().
			Str("endpoint", cfg.Azure.Endpoint).
			Str("deployment", cfg.Azure.Deployment).
			Msg("Azure OpenAI style analysis enabled")
	} else {
		logging.Info().Msg("Azure OpenAI not configured - recommendations use keyword fallback")
	}

	// Load the product catalog. A missing or malformed catalog is not fatal:
	// the API serves degraded and /health/ready reports not-ready until a
	// catalog is provided.
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Warn().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog - starting with empty store")
		store, _ = catalog.New(nil)
	}

	// AI clients are created unconditionally; each reports Available() false
	// when unconfigured so the status endpoints can say which half is missing.
	generator := gemini.New(cfg.Gemini)
	analyzer := vision.NewAzureClient(cfg.Azure)

	engine := recommend.NewEngine(store, analyzer, cfg.Recommend)
	if cfg.Recommend.Rerank {
		engine.SetReranker(recommend.NewLLMReranker(analyzer, cfg.Recommend))
	}

	// Proxy image cache, shared between the handler (reads/writes) and the
	// maintenance service (expired-entry sweeps).
	images := cache.NewImageCache(imageCacheMaxBytes, imageCacheTTL)

	metrics.SetAppInfo(api.Version, runtime.Version())

	handler := api.NewHandler(store, engine, generator, images, cfg)
	router := api.NewRouter(handler, cfg.Security)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for local development and CI!")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	tree.AddMaintenanceService(services.NewMaintenanceService(images, services.MaintenanceConfig{
		SweepInterval: cfg.Cache.CleanupInterval,
		StartedAt:     startedAt,
	}, logging.WithComponent("maintenance")))
	logging.Info().Msg("Cache maintenance service added to supervisor tree")

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
