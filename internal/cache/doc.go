// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package cache provides thread-safe in-memory caching with TTL support.

Two cache shapes live here, matched to the two cacheable surfaces of the
service:

  - Cache: a TTL key-value cache for introspection payloads (vendor status
    blocks, catalog statistics). Unbounded but tiny: the key space is a
    handful of fixed endpoints.
  - ImageCache: a byte-budgeted LRU for proxied product images, keyed by
    source URL. Bounded because entries are megabytes, not kilobytes.

Generated try-on composites and recommendation responses are deliberately
never cached; every generation request must reach the upstream pipeline.

# Overview

Both caches provide:
  - Thread-safe concurrent access
  - Time-to-live (TTL) expiration
  - Hit/miss/eviction statistics exported as Prometheus cache metrics,
    labeled per cache instance (cache_type: "status", "stats", "proxy")

# Usage Example

Basic caching:

	import "github.com/tomtom215/vestiarium/internal/cache"

	// Create cache with 60-second default TTL, 5-minute cleanup sweep
	c := cache.New("status", time.Minute, 5*time.Minute)
	defer c.Stop()

	// Store value
	c.Set("generate:status", status)

	// Retrieve value
	if value, ok := c.Get("generate:status"); ok {
	    status := value.(models.GenerateStatus)
	    // Use cached status
	}

API handler caching pattern:

	func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	    cacheKey := "recommend:catalog:v1"

	    // Check cache
	    if cached, ok := h.cache.Get(cacheKey); ok {
	        h.respondJSON(w, r, http.StatusOK, cached)
	        return
	    }

	    // Cache miss - aggregate from the catalog store
	    stats := h.store.Stats()
	    h.cache.Set(cacheKey, stats)
	    h.respondJSON(w, r, http.StatusOK, stats)
	}

Image proxy pattern:

	if data, mimeType, ok := h.images.Get(srcURL); ok {
	    respondProxyImage(w, data, mimeType)
	    return
	}
	data, mimeType, err := fetchUpstream(ctx, srcURL)
	if err == nil {
	    h.images.Add(srcURL, data, mimeType)
	}

# Cache Invalidation

Two invalidation strategies:

 1. TTL-based expiration: entries expire after the configured TTL, checked
    lazily on Get and swept periodically by the cleanup goroutine.
 2. Manual invalidation: Clear() after a catalog reload so status and stats
    endpoints serve fresh aggregates immediately.

# Cache Key Conventions

	generate:status         // Gemini availability + config block
	recommend:status        // Azure + catalog availability block
	recommend:catalog:v1    // catalog statistics payload
	<source URL>            // ImageCache keys are the raw proxied URL

# TTL Configuration

	Status/stats payloads: CACHE_TTL (default 60s)
	  - The frontend polls these; recomputing per poll is wasted work
	  - Short enough that a config change shows up within a minute

	Proxied images: 10 minutes, 64MB budget
	  - Product CDN content is effectively immutable per URL

# Thread Safety

All methods on both caches are safe for concurrent use from multiple
goroutines.

# Limitations

Intentional simplifications at this scale:

  - Cache (TTL) has no size bound: its key space is a fixed, small set
  - No cache persistence (in-memory only)
  - No distributed caching (single instance)

# See Also

  - internal/api: handlers that read through these caches
  - internal/metrics: cache_hits_total / cache_misses_total / cache_entries
*/
package cache
