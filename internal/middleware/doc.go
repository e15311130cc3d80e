// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, and Prometheus metrics integration. The chi-specific middleware
(request IDs, CORS, rate limiting, security headers) lives in internal/api,
which adapts these handlers into its router stack.

Key Components:

  - Compression: Gzip compression with pooled writers
  - Performance Monitor: Request latency tracking with percentile calculations
  - Prometheus Metrics: HTTP request/response instrumentation

Usage Example - Compression:

	import "github.com/tomtom215/vestiarium/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/recommend/catalog",
	    middleware.Compression(handler),
	)

	// Accept-Encoding: gzip header is required

Usage Example - Performance Monitoring:

	// Create performance monitor keeping the last 1000 requests
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handler
	handler := perfMon.Middleware(mux)

	// Get performance statistics
	stats := perfMon.GetStats()
	fmt.Printf("p50: %dms, p95: %dms, p99: %dms\n",
	    stats[0].P50Duration, stats[0].P95Duration, stats[0].P99Duration)

Performance Characteristics:

Generation and recommendation responses are JSON envelopes that often carry
base64 image payloads. Base64 inflates the underlying bytes by a third and
gzip recovers most of that, so compression stays worthwhile even for
multi-megabyte generated images.

  - Compression overhead: ~1-2ms for typical responses
  - Metrics overhead: <0.1ms per request
  - Performance monitor: rolling window of the most recent requests

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: Router, chi middleware factories, HTTP handlers
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
