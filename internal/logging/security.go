// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// UpstreamEvent represents a security-relevant upstream API event.
// Vestiarium talks to third-party AI vendors with long-lived API keys,
// so every log line about those calls must be credential-safe.
type UpstreamEvent struct {
	// Event is the type of event (e.g., "key_rotated", "key_invalid", "rate_limited").
	Event string
	// Vendor is the upstream service (gemini, azure_openai).
	Vendor string
	// Model is the vendor model or deployment in use.
	Model string
	// KeyHint is the sanitized API key involved (never the raw key).
	KeyHint string
	// Attempt is the retry attempt number (0 when not applicable).
	Attempt int
	// Success indicates if the operation was successful.
	Success bool
	// Error is the error message if the operation failed.
	Error string
	// Details contains additional sanitized details.
	Details map[string]string
}

// SecurityLogger provides credential-safe logging for upstream vendor traffic.
// It automatically sanitizes API keys, endpoints, and error strings before logging.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a new security logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		logger: With().Str("component", "upstream").Logger(),
	}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{
		logger: logger.With().Str("component", "upstream").Logger(),
	}
}

// LogEvent logs an upstream event with automatic sanitization.
func (l *SecurityLogger) LogEvent(event *UpstreamEvent) {
	e := l.logger.Info().
		Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}

	if event.Vendor != "" {
		e = e.Str("vendor", event.Vendor)
	}

	if event.Model != "" {
		e = e.Str("model", event.Model)
	}

	if event.KeyHint != "" {
		e = e.Str("key", SanitizeToken(event.KeyHint))
	}

	if event.Attempt > 0 {
		e = e.Int("attempt", event.Attempt)
	}

	if event.Error != "" && !event.Success {
		e = e.Str("error", SanitizeError(event.Error))
	}

	// Add sanitized details
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("")
}

// Debug logs a debug-level message.
func (l *SecurityLogger) Debug(msg string, fields ...interface{}) {
	e := l.logger.Debug()
	e = addFieldPairs(e, fields)
	e.Msg(msg)
}

// Info logs an info-level message.
func (l *SecurityLogger) Info(msg string, fields ...interface{}) {
	e := l.logger.Info()
	e = addFieldPairs(e, fields)
	e.Msg(msg)
}

// Warn logs a warning-level message.
func (l *SecurityLogger) Warn(msg string, fields ...interface{}) {
	e := l.logger.Warn()
	e = addFieldPairs(e, fields)
	e.Msg(msg)
}

// Error logs an error-level message.
func (l *SecurityLogger) Error(msg string, fields ...interface{}) {
	e := l.logger.Error()
	e = addFieldPairs(e, fields)
	e.Msg(msg)
}

// addFieldPairs adds key-value pairs to a zerolog event.
func addFieldPairs(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			e = e.Interface(key, fields[i+1])
		}
	}
	return e
}

// ============================================================
// Pre-defined Upstream Events
// ============================================================

// LogKeyRotated logs a rotation to the next configured API key.
func (l *SecurityLogger) LogKeyRotated(vendor, fromKey, toKey string, reason string) {
	l.LogEvent(&UpstreamEvent{
		Event:   "key_rotated",
		Vendor:  vendor,
		KeyHint: toKey,
		Success: true,
		Details: map[string]string{
			"previous_key": SanitizeToken(fromKey),
			"reason":       reason,
		},
	})
}

// LogKeyInvalid logs an upstream rejection of an API key.
func (l *SecurityLogger) LogKeyInvalid(vendor, key, errMsg string) {
	l.LogEvent(&UpstreamEvent{
		Event:   "key_invalid",
		Vendor:  vendor,
		KeyHint: key,
		Success: false,
		Error:   errMsg,
	})
}

// LogRateLimited logs an upstream 429 response.
func (l *SecurityLogger) LogRateLimited(vendor, model string, attempt int) {
	l.LogEvent(&UpstreamEvent{
		Event:   "rate_limited",
		Vendor:  vendor,
		Model:   model,
		Attempt: attempt,
		Success: false,
	})
}

// LogVendorUnavailable logs a failed upstream call after retries were exhausted.
func (l *SecurityLogger) LogVendorUnavailable(vendor, model, errMsg string) {
	l.LogEvent(&UpstreamEvent{
		Event:   "vendor_unavailable",
		Vendor:  vendor,
		Model:   model,
		Success: false,
		Error:   errMsg,
	})
}

// ============================================================
// Sanitization Functions
// ============================================================

// SanitizeToken masks a token or API key, showing only first and last 4 characters.
// Example: "AIzaSyB1234567890abcdefgh" -> "AIza...efgh"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEndpoint masks credentials that may be embedded in an endpoint URL.
// Query strings are stripped entirely because Gemini passes the API key as
// a query parameter.
// Example: "https://host/v1beta/models/x:generateContent?key=abc" -> "https://host/v1beta/models/x:generateContent"
func SanitizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if i := strings.Index(endpoint, "?"); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// SanitizeError removes potentially sensitive information from error messages.
func SanitizeError(err string) string {
	// Remove potential secrets from error messages
	sensitivePatterns := []string{
		"password",
		"secret",
		"token",
		"api-key",
		"api_key",
		"bearer",
		"authorization",
		"cookie",
	}

	lowerErr := strings.ToLower(err)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lowerErr, pattern) {
			// Generic error message
			return "upstream credential error"
		}
	}

	// Truncate long errors
	return truncateString(err, 200)
}

// SanitizeValue sanitizes a value based on its key name.
func SanitizeValue(key, value string) string {
	lowerKey := strings.ToLower(key)

	// Check for sensitive key names
	sensitiveKeys := map[string]bool{
		"api_key":       true,
		"apikey":        true,
		"key":           true,
		"gemini_key":    true,
		"azure_key":     true,
		"token":         true,
		"password":      true,
		"secret":        true,
		"authorization": true,
		"bearer":        true,
		"cookie":        true,
	}

	if sensitiveKeys[lowerKey] {
		return SanitizeToken(value)
	}

	// Endpoint-like values may carry the key as a query parameter
	if lowerKey == "endpoint" || lowerKey == "url" {
		return SanitizeEndpoint(value)
	}

	return value
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
