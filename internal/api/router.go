// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/middleware"
	"github.com/tomtom215/vestiarium/internal/models"
)

// Router sets up HTTP routes using the Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	environment   string
}

// NewRouter creates a new router with all routes configured from the
// security section of the configuration.
func NewRouter(handler *Handler, sec config.SecurityConfig) *Router {
	environment := ""
	if handler != nil && handler.config != nil {
		environment = handler.config.Server.Environment
	}

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(sec),
		environment:   environment,
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Issue/propagate X-Request-ID with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(Recoverer(router.environment))
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Unmatched routes and wrong methods render through the envelope too,
	// so the frontend error boundary never sees plain-text bodies.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.ErrCodeNotFound,
			"Route not found: "+sanitizeLogValue(req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed,
			"Method not allowed")
	})

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitors can poll frequently
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitStatus())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// API Endpoints
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.handler.perfMon.Middleware)
		// Generated composites and proxied images dominate response bytes
		// as base64 JSON; gzip claws most of that back.
		r.Use(chiMiddleware(middleware.Compression))

		r.With(router.chiMiddleware.RateLimitStatus()).
			Get("/", router.handler.ServiceInfo)

		r.Route("/generate", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitGenerate()).
				Post("/", router.handler.Generate)
			r.With(router.chiMiddleware.RateLimitStatus()).
				Get("/status", router.handler.GenerateStatus)
		})

		r.Route("/recommend", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitRecommend()).
				Post("/", router.handler.Recommend)
			r.With(router.chiMiddleware.RateLimitRecommend()).
				Post("/from-fitting", router.handler.RecommendFromFitting)
			r.With(router.chiMiddleware.RateLimitStatus()).
				Get("/status", router.handler.RecommendStatus)
			r.With(router.chiMiddleware.RateLimitStatus()).
				Get("/catalog", router.handler.CatalogStats)
		})

		r.With(router.chiMiddleware.RateLimitRecommend()).
			Get("/proxy/image", router.handler.ProxyImage)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
