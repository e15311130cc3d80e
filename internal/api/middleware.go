// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler, so the handler-func middleware in
// internal/middleware (compression, Prometheus) works with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// RateLimitConfig defines rate limit parameters for a route group.
type RateLimitConfig struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
}

// Route-group rate limit defaults, per IP. Generation is the strictest
// because every accepted request can hold an upstream connection for the
// full 30s vendor timeout; status routes are polled by the frontend and
// by monitoring, so they get the loosest budget.
var (
	// RateLimitGenerate bounds POST /api/generate.
	RateLimitGenerate = RateLimitConfig{Requests: 10, Window: time.Minute}

	// RateLimitRecommend bounds the recommendation POSTs and the image proxy.
	RateLimitRecommend = RateLimitConfig{Requests: 30, Window: time.Minute}

	// RateLimitStatus bounds the status, catalog, info, and health GETs.
	RateLimitStatus = RateLimitConfig{Requests: 120, Window: time.Minute}
)

// ChiMiddleware provides Chi-compatible middleware factories built from the
// security configuration.
type ChiMiddleware struct {
	cfg  config.SecurityConfig
	cors func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. Zero-value rate limit
// fields in the config fall back to the package defaults, so a bare
// SecurityConfig is usable in tests.
func NewChiMiddleware(cfg config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	return &ChiMiddleware{
		cfg:  cfg,
		cors: corsHandler,
	}
}

// CORS returns the go-chi/cors handler configured with the FRONTEND_URL
// origins. Applied globally so OPTIONS preflight is answered on every route.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitGenerate returns the per-IP limiter for the generation route.
func (m *ChiMiddleware) RateLimitGenerate() func(http.Handler) http.Handler {
	return m.limit(m.cfg.RateLimitGenerate, RateLimitGenerate, "generate")
}

// RateLimitRecommend returns the per-IP limiter for the recommendation
// routes and the image proxy.
func (m *ChiMiddleware) RateLimitRecommend() func(http.Handler) http.Handler {
	return m.limit(m.cfg.RateLimitRecommend, RateLimitRecommend, "recommend")
}

// RateLimitStatus returns the per-IP limiter for status and health routes.
func (m *ChiMiddleware) RateLimitStatus() func(http.Handler) http.Handler {
	return m.limit(m.cfg.RateLimitStatus, RateLimitStatus, "status")
}

// limit builds an httprate limiter keyed by IP. The on-limit handler renders
// the 429 through the uniform envelope and records the hit, so throttled
// clients get the same error shape as everything else.
func (m *ChiMiddleware) limit(configured int, fallback RateLimitConfig, endpoint string) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	requests := configured
	if requests <= 0 {
		requests = fallback.Requests
	}
	window := m.cfg.RateLimitWindow
	if window <= 0 {
		window = fallback.Window
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(endpoint)
			respondError(w, r, http.StatusTooManyRequests, models.ErrCodeRateLimited,
				"Too many requests; retry after the rate limit window")
		}),
	)
}

// RequestIDWithLogging returns a middleware that adds request ID to the
// context and integrates with the logging package for request tracing.
// It wraps chi's RequestID middleware and adds correlation_id and request_id
// to the logging context so handler logs carry both.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Chi would generate an id itself, but the logging context needs
			// it before the handler runs, so generate ours first and let chi
			// adopt it from the header.
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = logging.ContextWithNewCorrelationID(ctx)

			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APISecurityHeaders returns a middleware that adds security headers to API
// responses.
//
// Headers added:
//   - X-Content-Type-Options: nosniff (prevents MIME type sniffing)
//   - X-Frame-Options: DENY (prevents clickjacking)
//   - Referrer-Policy: strict-origin-when-cross-origin (limits referrer information)
//
// HSTS is added when the request arrives over HTTPS or through a
// TLS-terminating proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Recoverer returns a panic-recovery middleware that renders the failure
// through the error envelope instead of chi's plain-text 500. The stack is
// always logged; it reaches the response body only in development mode.
func Recoverer(environment string) func(http.Handler) http.Handler {
	development := environment == "development"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					// net/http aborts the connection on this sentinel;
					// it must propagate.
					panic(rvr)
				}

				stack := string(debug.Stack())
				logging.Error().
					Interface("panic", rvr).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("stack", stack).
					Msg("Recovered from handler panic")

				respondInternalError(w, r, "Internal server error", stack, development)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
