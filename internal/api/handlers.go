// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/vestiarium/internal/cache"
	"github.com/tomtom215/vestiarium/internal/catalog"
	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/gemini"
	"github.com/tomtom215/vestiarium/internal/imageproc"
	"github.com/tomtom215/vestiarium/internal/middleware"
	"github.com/tomtom215/vestiarium/internal/recommend"
)

// Version is reported by GET /api and the health routes. Bumped on release.
const Version = "1.0.0"

// introspectionTTL bounds both the TTL cache entries and the Cache-Control
// max-age on status/catalog responses, so clients and the server expire
// together.
const introspectionTTL = 60 * time.Second

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by concern:
//   - handlers.go: Handler struct, constructor, accessors (this file)
//   - handlers_generate.go: virtual try-on generation endpoints
//   - handlers_recommend.go: recommendation and catalog endpoints
//   - handlers_proxy.go: product image proxy
//   - handlers_health.go: health probes and service info
type Handler struct {
	store     *catalog.Store
	engine    *recommend.Engine
	generator *gemini.Client
	config    *config.Config

	// validator applies the configured upload limits to request images.
	validator *imageproc.Validator

	// cache holds computed introspection payloads (catalog stats); domain
	// responses are never cached.
	cache *cache.Cache

	// images is the byte-budgeted LRU for proxied product images, shared
	// with the maintenance service that sweeps expired entries.
	images *cache.ImageCache

	// proxyClient fetches upstream product images with the configured
	// timeout; redirects follow the default policy.
	proxyClient *http.Client

	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler with all required dependencies.
//
// Dependencies:
//   - store: loaded product catalog (readiness gates on it)
//   - engine: recommendation orchestrator
//   - generator: try-on generation client
//   - images: proxy image cache, shared with the maintenance sweeper
//   - cfg: application configuration
//
// The handler initializes with a 60s TTL cache for introspection responses
// and a performance monitor tracking the last 1000 requests.
//
// Example:
//
//	handler := api.NewHandler(store, engine, generator, images, cfg)
//	router := api.NewRouter(handler, cfg.Security)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(store *catalog.Store, engine *recommend.Engine, generator *gemini.Client, images *cache.ImageCache, cfg *config.Config) *Handler {
	ttl := introspectionTTL
	cleanup := 5 * time.Minute
	if cfg != nil && cfg.Cache.TTL > 0 {
		ttl = cfg.Cache.TTL
	}
	if cfg != nil && cfg.Cache.CleanupInterval > 0 {
		cleanup = cfg.Cache.CleanupInterval
	}

	var maxBytes int64
	minDim := 0
	if cfg != nil {
		maxBytes = int64(cfg.Limits.MaxUploadBytes())
		minDim = cfg.Limits.MinImageDim
	}

	proxyTimeout := 15 * time.Second
	if cfg != nil && cfg.Proxy.TimeoutMS > 0 {
		proxyTimeout = cfg.Proxy.Timeout()
	}

	return &Handler{
		store:       store,
		engine:      engine,
		generator:   generator,
		config:      cfg,
		validator:   imageproc.NewValidator(maxBytes, minDim),
		cache:       cache.New("introspection", ttl, cleanup),
		images:      images,
		proxyClient: &http.Client{Timeout: proxyTimeout},
		perfMon:     middleware.NewPerformanceMonitor(1000),
		startTime:   time.Now(),
	}
}

// GetPerformanceStats exposes per-endpoint latency stats for debugging.
func (h *Handler) GetPerformanceStats() map[string]*middleware.EndpointStats {
	return h.perfMon.GetStats()
}

// ClearCache invalidates the introspection cache. Useful after a catalog
// reload in tests; production catalogs are immutable for the process
// lifetime.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

// Close releases handler-owned resources (the TTL cache sweeper).
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Stop()
	}
}

// bodyLimit caps the request body. Base64 encoding inflates a 10MB image
// budget to roughly 13MB on the wire, and a try-on request carries up to
// four images, so the effective default is ~53MB; the config can lower it.
func (h *Handler) bodyLimit() int64 {
	if h.config != nil {
		return h.config.Limits.BodyLimit()
	}
	return config.LimitsConfig{MaxUploadMB: 10}.BodyLimit()
}

// cacheEnabled reports whether introspection payloads may be served from
// the TTL cache. Response caching headers are unaffected.
func (h *Handler) cacheEnabled() bool {
	return h.config == nil || h.config.Cache.Enabled
}
