// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/recommend"
)

// catalogStatsCacheKey is the TTL-cache key for the aggregated catalog view.
const catalogStatsCacheKey = "catalog_stats"

// Recommend handles style recommendation requests
//
// @Summary Recommend catalog items for an outfit
// @Description Scores the product catalog against the uploaded person photo and/or clothing items. Uses AI style analysis when the vision service is available and degrades to keyword matching otherwise; valid input always yields a 200.
// @Tags Recommendation
// @Accept json
// @Produce json
// @Param request body models.RecommendationRequest true "Person image and/or clothing items, with optional scoring options"
// @Success 200 {object} models.RecommendationResponse "Ranked recommendations per category"
// @Failure 400 {object} models.ErrorResponse "No analyzable input or invalid image"
// @Failure 500 {object} models.ErrorResponse "Recommendation pipeline failed"
// @Router /api/recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.RecommendationRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondFieldError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Field)
		return
	}

	if !req.HasInput() {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"Provide a person image, clothing items, or both")
		return
	}

	if !h.validateRecommendImages(w, r, &req) {
		return
	}

	result, err := h.engine.Recommend(r.Context(), &req)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	h.respondRecommendation(w, r, result)
}

// RecommendFromFitting handles recommendation requests seeded by a generated try-on image
//
// @Summary Recommend catalog items similar to a try-on result
// @Description Analyzes a previously generated try-on image and returns catalog items similar to the garments it shows. Falls back to keyword matching over the original clothing items when vision analysis is unavailable.
// @Tags Recommendation
// @Accept json
// @Produce json
// @Param request body models.RecommendationFromFittingRequest true "Generated try-on image with optional original clothing items"
// @Success 200 {object} models.RecommendationResponse "Ranked recommendations per category"
// @Failure 400 {object} models.ErrorResponse "Missing or malformed generated image"
// @Failure 500 {object} models.ErrorResponse "Recommendation pipeline failed"
// @Router /api/recommend/from-fitting [post]
func (h *Handler) RecommendFromFitting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.RecommendationFromFittingRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondFieldError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Field)
		return
	}

	result, err := h.engine.RecommendFromFitting(r.Context(), &req)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	h.respondRecommendation(w, r, result)
}

// RecommendStatus handles recommendation service status requests
//
// @Summary Get recommendation service status
// @Description Reports vision analysis availability, its non-secret configuration, and catalog readiness.
// @Tags Recommendation
// @Produce json
// @Success 200 {object} models.RecommendStatus "Service status"
// @Router /api/recommend/status [get]
func (h *Handler) RecommendStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	status := models.RecommendStatus{}
	if h.engine != nil {
		status = h.engine.Status()
	}

	respondCacheableJSON(w, http.StatusOK, status, introspectionTTL)
}

// CatalogStats handles catalog introspection requests
//
// @Summary Get catalog statistics
// @Description Returns aggregate catalog statistics (item counts per category, price range). The payload is cached for 60 seconds; cache state travels in the response metadata.
// @Tags Recommendation
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CatalogStats} "Catalog statistics"
// @Router /api/recommend/catalog [get]
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()

	var (
		stats  models.CatalogStats
		cached bool
	)
	if h.cacheEnabled() {
		if v, ok := h.cache.Get(catalogStatsCacheKey); ok {
			if s, ok := v.(models.CatalogStats); ok {
				stats = s
				cached = true
			}
		}
	}
	if !cached && h.store != nil {
		stats = h.store.Stats()
		if h.cacheEnabled() {
			h.cache.Set(catalogStatsCacheKey, stats)
		}
	}

	respondCacheableJSON(w, http.StatusOK, models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	}, introspectionTTL)
}

// validateRecommendImages checks whichever images the request carries, in
// parallel. Both inputs are optional here, so only present files are
// validated. Returns false when a validation envelope has been written.
func (h *Handler) validateRecommendImages(w http.ResponseWriter, r *http.Request, req *models.RecommendationRequest) bool {
	g, _ := errgroup.WithContext(r.Context())

	if req.Person != nil {
		g.Go(func() error {
			return h.validateFile(req.Person, "person")
		})
	}
	if req.ClothingItems != nil {
		slots := req.ClothingItems.Present()
		files := req.ClothingItems.Files()
		for i := range files {
			file, slot := files[i], slots[i]
			g.Go(func() error {
				return h.validateFile(file, "clothingItems."+slot)
			})
		}
	}

	if err := g.Wait(); err != nil {
		h.respondValidationError(w, r, err)
		return false
	}
	return true
}

// respondRecommendation renders the engine result into the documented
// response shape.
func (h *Handler) respondRecommendation(w http.ResponseWriter, r *http.Request, result *recommend.Result) {
	logging.CtxInfo(r.Context()).
		Str("method", result.Method).
		Dur("duration", result.Elapsed).
		Msg("Recommendations computed")

	respondJSON(w, http.StatusOK, &models.RecommendationResponse{
		Recommendations:  result.Recommendations,
		AnalysisMethod:   result.Method,
		StyleAnalysis:    result.Style,
		ClothingAnalysis: result.Clothing,
		RequestID:        logging.RequestIDFromContext(r.Context()),
		Timestamp:        time.Now().UTC(),
	})
}

// respondRecommendError maps engine failures onto the envelope. Input
// sentinels become 400s; anything else is a pipeline failure, which the
// fallback chain makes effectively unreachable for valid input.
func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrImageFormat):
		respondFieldError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			err.Error(), "generatedImage")
	case errors.Is(err, recommend.ErrNoInput):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
	default:
		logging.CtxErr(r.Context(), err).Msg("Recommendation failed")
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeRecommendationFailed,
			"Failed to compute recommendations")
	}
}
