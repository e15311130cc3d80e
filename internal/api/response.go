// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection. Newlines, carriage returns, and other control characters could
// otherwise let a crafted request forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response. Domain responses (generate, recommend)
// are never cacheable, so no caching headers are set here; introspection
// routes use respondCacheableJSON instead.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondCacheableJSON sends a JSON response with Cache-Control and a content
// ETag. Used by the cheap introspection GETs (status, catalog, service info)
// that frontends poll; the ETag lets intermediaries revalidate even though
// the payloads are small.
func respondCacheableJSON(w http.ResponseWriter, status int, payload interface{}, maxAge time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends the uniform error envelope. The request id from the
// logging context is echoed so clients can quote it in bug reports.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondFieldError(w, r, status, code, message, "")
}

// respondFieldError is respondError with the offending request field named,
// used for validation failures where the frontend highlights the input.
func respondFieldError(w http.ResponseWriter, r *http.Request, status int, code, message, field string) {
	requestID := logging.RequestIDFromContext(r.Context())

	if status >= http.StatusInternalServerError {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("path", r.URL.Path).
			Str("request_id", requestID).
			Msg(sanitizeLogValue(message))
	} else {
		logging.Debug().
			Str("code", sanitizeLogValue(code)).
			Str("path", r.URL.Path).
			Str("request_id", requestID).
			Msg(sanitizeLogValue(message))
	}

	respondJSON(w, status, &models.ErrorResponse{
		Error: models.ErrorBody{
			Message:   message,
			Code:      code,
			Field:     field,
			RequestID: requestID,
		},
	})
}

// respondInternalError renders a 500 envelope. The stack is attached only in
// development mode; production responses never leak frames.
func respondInternalError(w http.ResponseWriter, r *http.Request, message, stack string, development bool) {
	requestID := logging.RequestIDFromContext(r.Context())

	body := models.ErrorBody{
		Message:   message,
		Code:      models.ErrCodeInternal,
		RequestID: requestID,
	}
	if development {
		body.Stack = stack
	}

	respondJSON(w, http.StatusInternalServerError, &models.ErrorResponse{Error: body})
}

// validateRequest validates a struct using go-playground/validator and maps
// the first failure onto the envelope fields. Returns nil when validation
// passes.
func validateRequest(v interface{}) *models.ErrorBody {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.ErrorBody{
		Message: apiErr.Message,
		Code:    models.ErrCodeValidation,
		Field:   apiErr.Field,
	}
}
