// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package vision

import (
	"context"
	"errors"

	"github.com/tomtom215/vestiarium/internal/models"
)

// Analyzer is the vision analysis surface the recommendation engine depends
// on. *AzureClient is the production implementation; tests substitute
// deterministic fakes.
//
// Both analysis methods return an empty-but-non-nil result on every failure
// path, so callers can read facets without a nil check regardless of the
// error.
type Analyzer interface {
	// Analyze describes the style of the provided images (data URIs).
	Analyze(ctx context.Context, imageURIs []string) (*models.StyleAnalysis, error)

	// AnalyzeClothing describes the garments visible in a generated try-on
	// composite (data URI).
	AnalyzeClothing(ctx context.Context, imageURI string) (*models.ClothingAnalysis, error)

	// Available reports whether the vendor is configured.
	Available() bool

	// Config returns the non-secret client configuration for status routes.
	Config() models.AnalysisConfig
}

var (
	// ErrNotConfigured is returned when endpoint or key is missing. The
	// engine checks Available before calling, so seeing this error means a
	// wiring bug rather than a degraded deployment.
	ErrNotConfigured = errors.New("vision analysis service is not configured")

	// ErrNoImages rejects analysis calls without any image input.
	ErrNoImages = errors.New("analysis requires at least one image")
)

// Analysis prompts. Both demand a bare JSON object; response parsing still
// goes through ExtractJSON because models wrap answers in fences or prose
// anyway.
const (
	stylePrompt = "Analyze the provided person/clothing images and output ONLY JSON with keys: detected_style, colors, categories, style_preference. Be concise."

	clothingPrompt = "Analyze this virtual try-on image and output ONLY JSON with keys: top, pants, shoes, overall_style (each an array of concise attributes)."
)
