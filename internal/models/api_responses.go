// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

import (
	"time"
)

// Machine-readable error codes carried in ErrorBody.Code.
// Codes are stable contract values: clients branch on them, so renaming one
// is a breaking API change.
const (
	// ErrCodeValidation covers malformed, missing, or out-of-range input.
	ErrCodeValidation = "VALIDATION_ERROR"

	// ErrCodeUnsupportedFormat is returned when an uploaded image has a MIME
	// type outside the jpeg/png/webp whitelist.
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"

	// ErrCodeFileTooLarge is returned when an uploaded image exceeds the
	// configured size limit.
	ErrCodeFileTooLarge = "FILE_TOO_LARGE"

	// ErrCodeImageTooSmall is returned when an image's pixel dimensions are
	// below the processing floor.
	ErrCodeImageTooSmall = "IMAGE_TOO_SMALL"

	// ErrCodeServiceUnavailable is returned when an upstream AI vendor is not
	// configured or its circuit breaker is open.
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// ErrCodeUpstreamTimeout is returned when an upstream AI call exceeded its
	// deadline.
	ErrCodeUpstreamTimeout = "UPSTREAM_TIMEOUT"

	// ErrCodeUpstreamRateLimited is returned when the upstream vendor rejected
	// the call with a rate-limit response after retries.
	ErrCodeUpstreamRateLimited = "UPSTREAM_RATE_LIMITED"

	// ErrCodeRateLimited is returned when this service's own per-IP rate
	// limiter rejects the request. Distinct from UPSTREAM_RATE_LIMITED so
	// clients can tell local throttling from vendor throttling.
	ErrCodeRateLimited = "RATE_LIMITED"

	// ErrCodeGenerationFailed is returned when try-on image generation failed
	// for an opaque upstream reason.
	ErrCodeGenerationFailed = "GENERATION_FAILED"

	// ErrCodeRecommendationFailed is returned when the recommendation pipeline
	// failed outright (the fallback chain makes this effectively unreachable
	// for valid input).
	ErrCodeRecommendationFailed = "RECOMMENDATION_FAILED"

	// ErrCodeNotFound is returned for unmatched routes and unknown resources.
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodeMethodNotAllowed is returned when a route exists but not for the
	// request method.
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// ErrCodeBadGateway is returned when the image proxy cannot fetch the
	// upstream resource.
	ErrCodeBadGateway = "BAD_GATEWAY"

	// ErrCodeUnsupportedMediaType is returned when the image proxy's upstream
	// resource is not an image.
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"

	// ErrCodeInternal is the catch-all for unexpected server-side failures.
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform error envelope returned by every route on
// failure. Success payloads are route-specific; errors always look the same so
// the frontend error boundary can handle them generically.
//
// Example:
//
//	{
//	  "error": {
//	    "message": "person image is required",
//	    "code": "VALIDATION_ERROR",
//	    "field": "person",
//	    "requestId": "9f1c2d3e-4b5a-6789-abcd-ef0123456789"
//	  }
//	}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the structured error details inside ErrorResponse.
//
// Fields:
//   - Message: human-readable description, safe to display to users
//   - Code: machine-readable code (see the ErrCode constants)
//   - Field: offending request field for validation errors
//   - RequestID: the X-Request-ID assigned to the failed request
//   - Stack: abbreviated stack trace, populated only in development mode
type ErrorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

// APIResponse is the wrapper used by the catalog introspection endpoint,
// where cache metadata (cached flag, query time) is part of the contract.
// Every other endpoint returns its documented flat shape; see
// VirtualTryOnResponse, RecommendationResponse, GenerationStatus,
// RecommendStatus, HealthStatus, and ServiceInfo.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"totalItems": 120, "categories": {...}},
//	  "metadata": {
//	    "timestamp": "2026-02-10T12:00:00Z",
//	    "query_time_ms": 2,
//	    "cached": true
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *ErrorBody  `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and cache tracking.
//
// Fields:
//   - Timestamp: server time when the response was generated (RFC3339)
//   - QueryTimeMS: handler processing time in milliseconds (0 if cached)
//   - Cached: whether the response was served from the TTL cache
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// ServiceInfo is returned by GET /api: a machine-readable map of the API
// surface for frontend discovery and smoke checks.
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ProxyImageResponse is the body of GET /api/proxy/image: the upstream
// product image re-encoded for direct use in a frontend canvas.
type ProxyImageResponse struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// HealthStatus is returned by the liveness and readiness probes.
//
// Readiness reports vendor availability for observability but only the
// catalog gates readiness: the service degrades to fallback recommendations
// without vendors, which is still a usable state.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds int64     `json:"uptime_seconds,omitempty"`
	CatalogLoaded bool      `json:"catalog_loaded"`
	Generation    bool      `json:"generation_available"`
	Analysis      bool      `json:"analysis_available"`
	Timestamp     time.Time `json:"timestamp"`
}
