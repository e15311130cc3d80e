// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package api provides the HTTP REST API layer for Vestiarium.

This package implements the endpoints for virtual try-on generation, style
recommendations, catalog introspection, and the product image proxy. It is
the boundary between the frontend web application and the generation and
recommendation services.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: flat JSON bodies with a uniform error envelope
  - Error handling: machine-readable error codes with appropriate HTTP status
  - Rate limiting: per-IP limits sized to each endpoint's upstream cost
  - CORS: Cross-Origin Resource Sharing for frontend compatibility

API Categories:

The API is organized into the following categories:

1. Generation Endpoints (/api/generate):
  - Virtual try-on image generation (person photo + clothing items)
  - Generation service status and configuration introspection

2. Recommendation Endpoints (/api/recommend):
  - Style recommendations from a person photo and/or clothing items
  - Similar-item recommendations from a generated try-on image
  - Recommendation service status and catalog statistics

3. Proxy Endpoint (/api/proxy/image):
  - Server-side fetch of remote product images, bypassing browser CORS
  - In-process caching keyed by source URL

4. Operational Endpoints:
  - Health checks (/health, /health/live, /health/ready)
  - Prometheus metrics (/metrics)
  - OpenAPI documentation (/swagger)

Usage Example:

	import (
	    "github.com/tomtom215/vestiarium/internal/api"
	    "github.com/tomtom215/vestiarium/internal/catalog"
	    "github.com/tomtom215/vestiarium/internal/config"
	)

	// Create dependencies
	cfg, _ := config.Load()
	store, _ := catalog.Load(cfg.Catalog.Path)

	// Create handler and router
	handler := api.NewHandler(store, engine, generator, images, cfg)
	router := api.NewRouter(handler, cfg.Security)

	// Setup routes and start server
	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())

Error Contract:

Every failure renders the same envelope regardless of route:

	{"error": {"message": "...", "code": "VALIDATION_ERROR", "field": "person", "requestId": "..."}}

Success bodies are route-specific flat shapes; only the catalog
introspection route wraps its payload in APIResponse to carry cache
metadata.

Thread Safety:

All handlers are thread-safe and designed for concurrent request handling.
Shared resources (catalog store, caches, vendor clients) are protected by
their respective synchronization primitives.

Security:

  - Strict security headers on every API response
  - Per-IP rate limiting sized per endpoint class
  - Upload size limits enforced before JSON decoding completes
  - API keys never appear in responses, logs, or error messages

See Also:

  - internal/gemini: Try-on image generation client
  - internal/recommend: Recommendation engine and fallback chain
  - internal/catalog: Read-only product catalog store
  - internal/models: Request/response data structures
  - internal/middleware: HTTP middleware components
*/
package api
