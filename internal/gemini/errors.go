// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/breaker"
	"github.com/tomtom215/vestiarium/internal/metrics"
)

var (
	// ErrNotConfigured is returned by Generate when no API key is present.
	// The API layer maps it to 503; startup proceeds regardless so the rest
	// of the service stays usable.
	ErrNotConfigured = errors.New("image generation service is not configured")

	// ErrNoClothing rejects try-on requests with every garment slot empty.
	ErrNoClothing = errors.New("at least one clothing item (top/pants/shoes) is required")

	// ErrNoPerson rejects try-on requests missing the person payload.
	ErrNoPerson = errors.New("person image requires base64 and mimeType")
)

// invalidKeyMarkers identify a rejected API key by response body substring
// (matched against the lowercased body). The vendor reports bad keys as
// HTTP 400 INVALID_ARGUMENT rather than 401, so the status code alone is
// not enough.
var invalidKeyMarkers = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
}

// apiError is a non-2xx response from the generateContent endpoint.
type apiError struct {
	StatusCode int
	Message    string

	// raw is the lowercased response body, kept for marker matching.
	raw string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// newAPIError extracts the vendor's error message from the standard
// {"error": {...}} envelope, falling back to the raw body when the response
// is not that shape (HTML error pages from proxies, truncated bodies).
func newAPIError(status int, body []byte) *apiError {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	return &apiError{StatusCode: status, Message: msg, raw: strings.ToLower(string(body))}
}

// IsInvalidKey reports whether err is an authentication failure that should
// advance the key ring instead of burning the retry budget.
func IsInvalidKey(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	if ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden {
		return true
	}
	for _, marker := range invalidKeyMarkers {
		if strings.Contains(ae.raw, marker) {
			return true
		}
	}
	return false
}

// IsRateLimited reports whether err is the vendor's quota rejection.
func IsRateLimited(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.StatusCode == http.StatusTooManyRequests || strings.Contains(ae.raw, "resource_exhausted")
}

// IsTimeout reports whether err is a deadline expiry, from either the
// request context or the HTTP client's own timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// outcomeFor maps an error to the shared upstream outcome label. Order
// matters: timeouts surface as net errors before any API classification
// applies, and breaker rejections are not vendor responses at all.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case breaker.IsOpen(err):
		return metrics.OutcomeUnavailable
	case IsTimeout(err):
		return metrics.OutcomeTimeout
	case IsRateLimited(err):
		return metrics.OutcomeRateLimited
	case IsInvalidKey(err):
		return metrics.OutcomeInvalidKey
	default:
		return metrics.OutcomeError
	}
}
