// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the service's flat error contract for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the service's error format
//   - Built-in validator support (oneof, min, max, base64, url)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type RecommendationOptions struct {
//	    MaxPerCategory int    `validate:"omitempty,min=1,max=20"`
//	    MinPrice       *int   `validate:"omitempty,min=0"`
//	    MaxPrice       *int   `validate:"omitempty,min=0"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req RecommendationRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Field)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//   - base64: Valid base64 encoding
//   - url: Valid URL format
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "20" for max=20)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the service's flat format:
//
//	// Single field error
//	{
//	    "error": {
//	        "message": "MimeType must be one of: image/jpeg image/png image/webp",
//	        "code": "VALIDATION_ERROR",
//	        "field": "MimeType"
//	    }
//	}
//
//	// Multiple field errors (field omitted, messages joined)
//	{
//	    "error": {
//	        "message": "Base64 is required; MaxPerCategory must be at most 20",
//	        "code": "VALIDATION_ERROR"
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "Base64 is required"
//	oneof=a b  -> "MimeType must be one of: a b"
//	min=1      -> "MaxPerCategory must be at least 1"
//	max=20     -> "MaxPerCategory must be at most 20"
//	base64     -> "Base64 must be valid base64 encoded"
//
// # Struct Tag Examples
//
// Uploaded image slots:
//
//	type APIFile struct {
//	    Base64   string `json:"base64" validate:"required"`
//	    MimeType string `json:"mimeType" validate:"required,oneof=image/jpeg image/png image/webp"`
//	}
//
// Recommendation tuning:
//
//	type RecommendationOptions struct {
//	    MaxPerCategory int  `validate:"omitempty,min=1,max=20"`
//	    MinPrice       *int `validate:"omitempty,min=0"`
//	    MaxPrice       *int `validate:"omitempty,min=0"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - internal/models: Request structs carrying validate tags
//   - github.com/go-playground/validator/v10: Underlying library
package validation
