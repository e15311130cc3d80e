// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/vestiarium/internal/cache"
	"github.com/tomtom215/vestiarium/internal/models"
)

// Health handles health check requests
//
// @Summary Get service health status
// @Description Returns overall health: catalog readiness, vendor availability, and uptime. Vendors being down does not degrade health because recommendations fall back to keyword matching; only a missing catalog does.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthStatus "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	status := "healthy"
	if !h.catalogLoaded() {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.HealthStatus{
		Status:        status,
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CatalogLoaded: h.catalogLoaded(),
		Generation:    h.generationAvailable(),
		Analysis:      h.analysisAvailable(),
		Timestamp:     time.Now().UTC(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":          true,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK once the catalog is loaded and the service can produce recommendations. Returns 503 until then. AI vendors do not gate readiness; the fallback chain serves without them.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthStatus "Service is ready"
// @Failure 503 {object} models.HealthStatus "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	ready := h.catalogLoaded()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	// Probes get the status body even on 503: infrastructure reads the
	// status code, humans read the flags.
	respondJSON(w, statusCode, &models.HealthStatus{
		Status:        status,
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CatalogLoaded: ready,
		Generation:    h.generationAvailable(),
		Analysis:      h.analysisAvailable(),
		Timestamp:     time.Now().UTC(),
	})
}

// ServiceInfo handles API discovery requests
//
// @Summary Get service information
// @Description Returns the service name, version, and a machine-readable map of available endpoints.
// @Tags Core
// @Produce json
// @Success 200 {object} models.ServiceInfo "Service information"
// @Router /api [get]
func (h *Handler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	respondCacheableJSON(w, http.StatusOK, &models.ServiceInfo{
		Name:    "vestiarium",
		Version: Version,
		Endpoints: map[string]string{
			"generate":             "POST /api/generate",
			"generateStatus":       "GET /api/generate/status",
			"recommend":            "POST /api/recommend",
			"recommendFromFitting": "POST /api/recommend/from-fitting",
			"recommendStatus":      "GET /api/recommend/status",
			"catalog":              "GET /api/recommend/catalog",
			"proxyImage":           "GET /api/proxy/image",
			"health":               "GET /health",
			"metrics":              "GET /metrics",
			"docs":                 "GET /swagger/index.html",
		},
	}, introspectionTTL)
}

func (h *Handler) catalogLoaded() bool {
	return h.store != nil && h.store.Len() > 0
}

func (h *Handler) generationAvailable() bool {
	return h.generator != nil && h.generator.Available()
}

func (h *Handler) analysisAvailable() bool {
	if h.engine == nil {
		return false
	}
	return h.engine.Status().AIService.Available
}

// GetCacheStats returns introspection cache performance statistics.
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
