// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements comprehensive application instrumentation using the Prometheus
client library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Upstream AI vendor calls (Gemini image generation, Azure OpenAI vision analysis)
  - Try-on generation pipeline outcomes and image sizes
  - Recommendation pipeline method split (AI vs keyword fallback) and result counts
  - API endpoint latency and throughput
  - Catalog size per category
  - Image decode/resize and proxy fetch performance
  - Cache hit/miss rates
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3000/metrics

# Available Metrics

Upstream Vendor Metrics:
  - upstream_request_duration_seconds: Vendor call latency (histogram)
    Labels: vendor (gemini, azure), operation (generate, analyze_style, analyze_tryon, rerank)
    Buckets: .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60
  - upstream_requests_total: Vendor calls (counter)
    Labels: vendor, operation, outcome (success, timeout, rate_limited, invalid_key, error)
  - upstream_retries_total: Retries after retryable failures (counter)
    Labels: vendor
  - upstream_key_rotations_total: Generation key ring advances (counter)

Generation Metrics:
  - generation_requests_total: Try-on generation requests (counter)
    Labels: outcome (success, no_image, unavailable, error)
  - generation_duration_seconds: End-to-end generation latency (histogram)
    Buckets: .5, 1, 2.5, 5, 10, 15, 30, 60, 120
  - generation_image_bytes: Decoded composite image sizes (histogram)
    Buckets: exponential, 64KB to 8MB

Analysis and Recommendation Metrics:
  - analysis_requests_total: Vision analysis calls (counter)
    Labels: kind (style, tryon), outcome
  - analysis_fallbacks_total: Recommendations served without AI analysis (counter)
  - recommendation_requests_total: Recommendation requests (counter)
    Labels: method (ai, fallback)
  - recommendation_duration_seconds: Pipeline latency (histogram)
  - recommendation_items_returned: Items per response (histogram)
  - rerank_requests_total: LLM re-ranking attempts (counter)
    Labels: outcome (applied, failed, skipped)

Catalog Metrics:
  - catalog_items: Items per category (gauge)
    Labels: category
  - catalog_load_timestamp: Unix timestamp of last successful load (gauge)

Image and Proxy Metrics:
  - image_decode_total: Uploaded image decode attempts (counter)
    Labels: format, outcome
  - image_resize_duration_seconds: Downscale latency (histogram)
  - proxy_fetches_total: Image proxy fetches (counter)
    Labels: outcome (success, bad_url, not_image, too_large, upstream_error)
  - proxy_fetch_duration_seconds: Proxy upstream latency (histogram)

API Metrics:
  - api_requests_total: API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Cache Metrics:
  - cache_hits_total / cache_misses_total: Hit/miss counts (counter)
    Labels: cache_type
  - cache_entries: Current entry count (gauge)
    Labels: cache_type
  - cache_evictions_total: TTL expiries (counter)
    Labels: cache_type

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

System Metrics:
  - app_info: Version and Go runtime info (gauge, always 1)
    Labels: version, go_version
  - app_uptime_seconds: Uptime (gauge)

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/tomtom215/vestiarium/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    metrics.SetAppInfo("1.0.0", runtime.Version())
	    http.Handle("/metrics", promhttp.Handler())
	}

Recording an upstream vendor call:

	start := time.Now()
	result, err := client.Generate(ctx, req)
	outcome := metrics.OutcomeSuccess
	if err != nil {
	    outcome = classifyError(err)
	}
	metrics.RecordUpstreamCall(metrics.VendorGemini, "generate", outcome, time.Since(start))

Recording HTTP metrics happens in internal/middleware via a wrapped
ResponseWriter; handlers do not record API metrics themselves.

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'vestiarium'
	    static_configs:
	      - targets: ['localhost:3000']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

Example PromQL queries:

	# Generation success rate
	sum(rate(generation_requests_total{outcome="success"}[5m]))
	/
	sum(rate(generation_requests_total[5m]))

	# Upstream p95 latency per vendor
	histogram_quantile(0.95, sum by (vendor, le) (rate(upstream_request_duration_seconds_bucket[5m])))

	# Share of recommendations served by the keyword fallback
	sum(rate(recommendation_requests_total{method="fallback"}[5m]))
	/
	sum(rate(recommendation_requests_total[5m]))

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use route patterns, never raw request paths
  - Outcome and vendor labels are limited to predefined constants
  - Catalog category labels come from the fixed category set
  - User- or request-specific labels are avoided

# Alerting Rules

Example Prometheus alerting rules:

	groups:
	  - name: vestiarium
	    rules:
	      - alert: GenerationFailureRate
	        expr: |
	          sum(rate(generation_requests_total{outcome!="success"}[5m]))
	          /
	          sum(rate(generation_requests_total[5m]))
	          > 0.25
	        for: 5m
	        annotations:
	          summary: "Try-on generation failure rate: {{ $value }}%"

	      - alert: AllKeysInvalid
	        expr: rate(upstream_requests_total{outcome="invalid_key"}[5m]) > 0
	        for: 10m
	        annotations:
	          summary: "Gemini key ring reporting invalid keys"

	      - alert: CircuitBreakerOpen
	        expr: circuit_breaker_state == 2
	        for: 2m
	        annotations:
	          summary: "Circuit breaker open for {{ $labels.name }}"

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/gemini: Generation client metrics recording
  - internal/vision: Analysis client metrics recording
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
  - https://prometheus.io/docs/practices/instrumentation/: Instrumentation guide
*/
package metrics
