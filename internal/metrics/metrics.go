// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides comprehensive instrumentation for:
// - Upstream AI vendor calls (Gemini generation, Azure OpenAI analysis)
// - Try-on generation and recommendation pipeline outcomes
// - API endpoint latency and throughput
// - Catalog and cache state
// - Circuit breaker state

// Vendor label values for upstream metrics.
const (
	VendorGemini = "gemini"
	VendorAzure  = "azure"
)

// Outcome label values shared by upstream and pipeline metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeTimeout     = "timeout"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalidKey  = "invalid_key"
	OutcomeNoImage     = "no_image"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

var (
	// Upstream Vendor Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream AI vendor calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60}, // Generation calls run up to the 30s timeout
		},
		[]string{"vendor", "operation"}, // operation: "generate", "analyze_style", "analyze_tryon", "rerank"
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream AI vendor calls",
		},
		[]string{"vendor", "operation", "outcome"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total number of upstream call retries after retryable failures",
		},
		[]string{"vendor"},
	)

	UpstreamKeyRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upstream_key_rotations_total",
			Help: "Total number of generation API key ring advances",
		},
	)

	// Generation Pipeline Metrics
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of try-on generation requests",
		},
		[]string{"outcome"}, // "success", "no_image", "unavailable", "error"
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "End-to-end try-on generation duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 15, 30, 60, 120}, // Retries across the key ring compound
		},
	)

	GenerationImageBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_image_bytes",
			Help:    "Decoded size of generated composite images in bytes",
			Buckets: prometheus.ExponentialBuckets(65536, 2, 8), // 64KB .. 8MB
		},
	)

	// Analysis Metrics
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of vision analysis calls",
		},
		[]string{"kind", "outcome"}, // kind: "style", "tryon"
	)

	AnalysisFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_fallbacks_total",
			Help: "Total number of recommendations served via the keyword fallback after analysis failure",
		},
	)

	// Recommendation Pipeline Metrics
	RecommendationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"method"}, // "ai", "fallback"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets, // Keyword path is sub-ms, AI path is seconds
		},
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_items_returned",
			Help:    "Number of items returned per recommendation response",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 20},
		},
	)

	RerankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rerank_requests_total",
			Help: "Total number of LLM re-ranking attempts",
		},
		[]string{"outcome"}, // "applied", "failed", "skipped"
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Current number of catalog items by category",
		},
		[]string{"category"},
	)

	CatalogLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_timestamp",
			Help: "Unix timestamp of the last successful catalog load",
		},
	)

	// Image Processing Metrics
	ImageDecodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_decode_total",
			Help: "Total number of uploaded image decode attempts",
		},
		[]string{"format", "outcome"},
	)

	ImageResizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_resize_duration_seconds",
			Help:    "Duration of image downscale operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Image Proxy Metrics
	ProxyFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_fetches_total",
			Help: "Total number of image proxy fetches",
		},
		[]string{"outcome"}, // "success", "bad_url", "not_image", "too_large", "upstream_error"
	)

	ProxyFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "proxy_fetch_duration_seconds",
			Help:    "Duration of image proxy upstream fetches in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}, // Generation requests hold for the upstream call
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "status", "stats"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordUpstreamCall records one upstream AI vendor call.
func RecordUpstreamCall(vendor, operation, outcome string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(vendor, operation).Observe(duration.Seconds())
	UpstreamRequestsTotal.WithLabelValues(vendor, operation, outcome).Inc()
}

// RecordUpstreamRetry records a retry after a retryable upstream failure.
func RecordUpstreamRetry(vendor string) {
	UpstreamRetries.WithLabelValues(vendor).Inc()
}

// RecordKeyRotation records an advance to the next generation API key.
func RecordKeyRotation() {
	UpstreamKeyRotations.Inc()
}

// RecordGeneration records a try-on generation request outcome. imageBytes
// is observed only for successful generations carrying an image.
func RecordGeneration(outcome string, duration time.Duration, imageBytes int) {
	GenerationRequestsTotal.WithLabelValues(outcome).Inc()
	GenerationDuration.Observe(duration.Seconds())
	if outcome == OutcomeSuccess && imageBytes > 0 {
		GenerationImageBytes.Observe(float64(imageBytes))
	}
}

// RecordAnalysis records a vision analysis call outcome.
func RecordAnalysis(kind, outcome string) {
	AnalysisRequestsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordAnalysisFallback records a recommendation served without AI analysis.
func RecordAnalysisFallback() {
	AnalysisFallbacks.Inc()
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(method string, duration time.Duration, items int) {
	RecommendationRequestsTotal.WithLabelValues(method).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationItems.Observe(float64(items))
}

// RecordRerank records an LLM re-ranking attempt outcome.
func RecordRerank(outcome string) {
	RerankRequestsTotal.WithLabelValues(outcome).Inc()
}

// UpdateCatalogGauges updates catalog item gauges after a (re)load.
func UpdateCatalogGauges(countsByCategory map[string]int) {
	for category, count := range countsByCategory {
		CatalogItems.WithLabelValues(category).Set(float64(count))
	}
	CatalogLoadTimestamp.Set(float64(time.Now().Unix()))
}

// RecordImageDecode records an uploaded-image decode attempt.
func RecordImageDecode(format string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ImageDecodeTotal.WithLabelValues(format, outcome).Inc()
}

// RecordProxyFetch records an image proxy fetch.
func RecordProxyFetch(outcome string, duration time.Duration) {
	ProxyFetchesTotal.WithLabelValues(outcome).Inc()
	ProxyFetchDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection for an endpoint group.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCacheHit records a cache hit for the given cache type.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// SetCacheSize sets the current entry count for the given cache type.
func SetCacheSize(cacheType string, size int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}

// RecordCacheEviction records TTL expiries for the given cache type.
func RecordCacheEviction(cacheType string, count int) {
	CacheEvictions.WithLabelValues(cacheType).Add(float64(count))
}

// SetCircuitBreakerState sets the state gauge for a named breaker.
// State encoding: 0=closed, 1=half-open, 2=open.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerRequest records a request outcome through a breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a breaker state transition.
func RecordCircuitBreakerTransition(name, fromState, toState string) {
	CircuitBreakerTransitions.WithLabelValues(name, fromState, toState).Inc()
}

// SetAppInfo sets the application info gauge.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime sets the application uptime gauge.
func SetUptime(seconds float64) {
	AppUptime.Set(seconds)
}
