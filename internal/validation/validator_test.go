// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	// Test that GetValidator returns the same instance
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// uploadStruct mirrors the uploaded-image slot shape used by the API
type uploadStruct struct {
	Base64   string `validate:"required"`
	MimeType string `validate:"required,oneof=image/jpeg image/png image/webp"`
}

// optionsStruct mirrors the recommendation tuning shape used by the API
type optionsStruct struct {
	MaxPerCategory int  `validate:"omitempty,min=1,max=20"`
	MinPrice       *int `validate:"omitempty,min=0"`
	MaxPrice       *int `validate:"omitempty,min=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	zero := 0
	high := 250000

	uploads := []struct {
		name  string
		input uploadStruct
	}{
		{"jpeg upload", uploadStruct{Base64: "aGVsbG8=", MimeType: "image/jpeg"}},
		{"png upload", uploadStruct{Base64: "aGVsbG8=", MimeType: "image/png"}},
		{"webp upload", uploadStruct{Base64: "aGVsbG8=", MimeType: "image/webp"}},
	}
	for _, tt := range uploads {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}

	options := []struct {
		name  string
		input optionsStruct
	}{
		{"zero value options", optionsStruct{}},
		{"bounds in range", optionsStruct{MaxPerCategory: 20, MinPrice: &zero, MaxPrice: &high}},
		{"minimum per category", optionsStruct{MaxPerCategory: 1}},
	}
	for _, tt := range options {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	negative := -5

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{
			name:      "missing payload",
			input:     &uploadStruct{MimeType: "image/jpeg"},
			wantField: "Base64",
			wantTag:   "required",
		},
		{
			name:      "missing mime type",
			input:     &uploadStruct{Base64: "aGVsbG8="},
			wantField: "MimeType",
			wantTag:   "required",
		},
		{
			name:      "mime type outside allowlist",
			input:     &uploadStruct{Base64: "aGVsbG8=", MimeType: "image/gif"},
			wantField: "MimeType",
			wantTag:   "oneof",
		},
		{
			name:      "per-category limit too high",
			input:     &optionsStruct{MaxPerCategory: 100},
			wantField: "MaxPerCategory",
			wantTag:   "max",
		},
		{
			name:      "negative price floor",
			input:     &optionsStruct{MinPrice: &negative},
			wantField: "MinPrice",
			wantTag:   "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("ValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := uploadStruct{
		Base64:   "", // required field missing
		MimeType: "image/png",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Message != "Base64 is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Base64 is required")
	}

	// Single failure names the field
	if apiErr.Field != "Base64" {
		t.Errorf("Field = %q, want Base64", apiErr.Field)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := uploadStruct{} // both fields missing

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	// Multiple failures join messages and leave Field empty
	if apiErr.Field != "" {
		t.Errorf("Field = %q, want empty for multiple errors", apiErr.Field)
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("Message %q should join messages with ';'", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "Base64") || !strings.Contains(apiErr.Message, "MimeType") {
		t.Errorf("Message %q should mention both failed fields", apiErr.Message)
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		wantMsg string
	}{
		{
			name:    "required message",
			input:   &uploadStruct{MimeType: "image/png"},
			wantMsg: "Base64 is required",
		},
		{
			name:    "oneof message includes allowed values",
			input:   &uploadStruct{Base64: "aGVsbG8=", MimeType: "text/plain"},
			wantMsg: "MimeType must be one of: image/jpeg image/png image/webp",
		},
		{
			name:    "numeric max message",
			input:   &optionsStruct{MaxPerCategory: 99},
			wantMsg: "MaxPerCategory must be at most 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if got := err.Errors()[0].Error(); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

// ===================================================================================================
// Accessor Tests
// ===================================================================================================

func TestValidationErrorAccessors(t *testing.T) {
	input := optionsStruct{MaxPerCategory: 99}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	e := err.Errors()[0]
	if e.Field() != "MaxPerCategory" {
		t.Errorf("Field() = %q, want MaxPerCategory", e.Field())
	}
	if e.Tag() != "max" {
		t.Errorf("Tag() = %q, want max", e.Tag())
	}
	if e.Param() != "20" {
		t.Errorf("Param() = %q, want 20", e.Param())
	}
	if e.Value() != 99 {
		t.Errorf("Value() = %v, want 99", e.Value())
	}
}

func TestRequestValidationErrorCombinedMessage(t *testing.T) {
	input := uploadStruct{}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	combined := err.Error()
	if !strings.Contains(combined, "Base64 is required") {
		t.Errorf("Error() = %q, should contain the Base64 message", combined)
	}
	if !strings.Contains(combined, "; ") {
		t.Errorf("Error() = %q, should join messages with '; '", combined)
	}
}
