// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/vestiarium/internal/breaker"
	"github.com/tomtom215/vestiarium/internal/gemini"
	"github.com/tomtom215/vestiarium/internal/imageproc"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/models"
)

// Generate handles virtual try-on generation requests
//
// @Summary Generate a virtual try-on composite
// @Description Composites the uploaded person photo with the provided clothing item images into a single try-on image, returned inline as a data URI.
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body models.VirtualTryOnRequest true "Person image and clothing items"
// @Success 200 {object} models.VirtualTryOnResponse "Generated composite image"
// @Failure 400 {object} models.ErrorResponse "Missing or invalid input"
// @Failure 429 {object} models.ErrorResponse "Upstream rate limit exhausted"
// @Failure 500 {object} models.ErrorResponse "Generation failed"
// @Failure 503 {object} models.ErrorResponse "Generation service not configured or circuit open"
// @Failure 504 {object} models.ErrorResponse "Upstream timeout"
// @Router /api/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.VirtualTryOnRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondFieldError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Field)
		return
	}

	// A person photo alone is a no-op for the compositor; require at least
	// one garment slot before spending an upstream call.
	if req.ClothingItems.IsEmpty() {
		respondFieldError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"At least one clothing item is required in clothingItems (top, pants, or shoes)",
			"clothingItems")
		return
	}

	if !h.validateTryOnImages(w, r, &req) {
		return
	}

	if h.generator == nil || !h.generator.Available() {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable,
			"Image generation service is not configured")
		return
	}

	start := time.Now()
	image, err := h.generator.Generate(r.Context(), &req.Person, req.ClothingItems)
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}
	if image == "" {
		// The model answered with text instead of a composite; from the
		// client's perspective that is a failed generation.
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeGenerationFailed,
			"The model returned no image for this request")
		return
	}

	logging.CtxInfo(r.Context()).
		Int("slots", len(req.ClothingItems.Present())).
		Dur("duration", time.Since(start)).
		Msg("Try-on image generated")

	respondJSON(w, http.StatusOK, &models.VirtualTryOnResponse{
		GeneratedImage: image,
		RequestID:      logging.RequestIDFromContext(r.Context()),
		Timestamp:      time.Now().UTC(),
	})
}

// GenerateStatus handles generation service status requests
//
// @Summary Get generation service status
// @Description Reports whether try-on generation is available and the non-secret client configuration (model, timeout, retry budget, key count).
// @Tags Generation
// @Produce json
// @Success 200 {object} models.GenerationStatus "Service status"
// @Router /api/generate/status [get]
func (h *Handler) GenerateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	status := models.GenerationStatus{}
	if h.generator != nil {
		status.Available = h.generator.Available()
		status.Config = h.generator.Config()
	}

	respondCacheableJSON(w, http.StatusOK, status, introspectionTTL)
}

// decodeBody caps and decodes a JSON request body, rendering the
// appropriate envelope on failure. Returns false when a response has
// already been written.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, r, http.StatusBadRequest, models.ErrCodeFileTooLarge,
				"Request body exceeds the upload size limit")
			return false
		}
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"Request body is not valid JSON")
		return false
	}
	return true
}

// validateTryOnImages checks the person photo and every garment slot in
// parallel; images are independent, so one slow decode does not serialize
// the rest. Returns false when a validation envelope has been written.
func (h *Handler) validateTryOnImages(w http.ResponseWriter, r *http.Request, req *models.VirtualTryOnRequest) bool {
	g, _ := errgroup.WithContext(r.Context())

	g.Go(func() error {
		return h.validateFile(&req.Person, "person")
	})

	slots := req.ClothingItems.Present()
	files := req.ClothingItems.Files()
	for i := range files {
		file, slot := files[i], slots[i]
		g.Go(func() error {
			return h.validateFile(file, "clothingItems."+slot)
		})
	}

	if err := g.Wait(); err != nil {
		h.respondValidationError(w, r, err)
		return false
	}
	return true
}

// validateFile applies the configured upload limits and stamps the request
// field onto the typed error, so the envelope can point at the offending
// slot.
func (h *Handler) validateFile(f *models.APIFile, field string) error {
	err := h.validator.Validate(f)
	if err == nil {
		return nil
	}
	var verr *imageproc.ValidationError
	if errors.As(err, &verr) {
		verr.Field = field
	}
	return err
}

// respondValidationError maps an image validation failure onto the envelope,
// preserving the typed code (UNSUPPORTED_FORMAT, FILE_TOO_LARGE, ...) when
// one is present.
func (h *Handler) respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *imageproc.ValidationError
	if errors.As(err, &verr) {
		respondFieldError(w, r, http.StatusBadRequest, verr.Code, verr.Detail, verr.Field)
		return
	}
	respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
}

// respondGenerationError translates upstream generation failures into the
// documented status codes: breaker-open and unconfigured to 503, timeout to
// 504, vendor rate limiting to 429, anything else to 500. The client's input
// sentinels map to 400, though the handler's own validation normally rejects
// those requests first.
func (h *Handler) respondGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable,
			"Image generation service is not configured")
	case errors.Is(err, gemini.ErrNoClothing), errors.Is(err, gemini.ErrNoPerson):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
	case breaker.IsOpen(err):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable,
			"Image generation is temporarily unavailable")
	case gemini.IsTimeout(err):
		respondError(w, r, http.StatusGatewayTimeout, models.ErrCodeUpstreamTimeout,
			"Image generation timed out")
	case gemini.IsRateLimited(err):
		respondError(w, r, http.StatusTooManyRequests, models.ErrCodeUpstreamRateLimited,
			"Image generation is rate limited upstream; try again shortly")
	default:
		logging.CtxErr(r.Context(), err).Msg("Try-on generation failed")
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeGenerationFailed,
			"Failed to generate try-on image")
	}
}
