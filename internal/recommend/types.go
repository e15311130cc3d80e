// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/vestiarium/internal/models"
)

// Engine input errors. Handlers validate requests before calling the
// engine, so surfacing one of these to a client indicates a missing
// handler-side check rather than a user mistake the engine is expected
// to handle.
var (
	// ErrNoInput is returned when a recommendation request carries neither
	// a person image nor any clothing item.
	ErrNoInput = errors.New("recommendation requires a person image or at least one clothing item")

	// ErrImageFormat is returned when a generated image is not in data URI
	// format (data:<mime>;base64,<payload>).
	ErrImageFormat = errors.New("generatedImage is not in data URI format (expected data:<mime>;base64,<payload>)")
)

// Result is the engine's answer to one recommendation request. The HTTP
// layer wraps it in a RecommendationResponse together with a request id
// and timestamp.
type Result struct {
	// Method records how keywords were derived: models.AnalysisMethodAI
	// when the vision strategy succeeded, models.AnalysisMethodFallback
	// otherwise.
	Method string

	// Style carries the raw vision analysis for outfit-photo requests.
	// Nil unless Method is "ai".
	Style *models.StyleAnalysis

	// Clothing carries the raw vision analysis for try-on-image requests.
	// Nil unless Method is "ai".
	Clothing *models.ClothingAnalysis

	// Recommendations holds the scored catalog items grouped by category.
	// Every slice is non-nil.
	Recommendations models.CategoryRecommendations

	// Elapsed is the total engine-side processing time.
	Elapsed time.Duration
}

// analysis is the outcome of one strategy in the chain: the derived
// keywords plus whichever raw analysis produced them.
type analysis struct {
	method   string
	keywords []string
	style    *models.StyleAnalysis
	clothing *models.ClothingAnalysis
}

// strategy is one attempt at deriving keywords from a request. Strategies
// run in chain order until the first success.
type strategy struct {
	name string
	run  func(ctx context.Context) (*analysis, error)
}

// Reranker reorders scored candidates after heuristic scoring.
//
// Rerank returns the selected item ids per category (keys from
// models.Categories), or nil when no reordering should be applied.
// Implementations must treat their own failures as advisory and return
// nil; the engine keeps the heuristic order in that case.
type Reranker interface {
	// Name identifies the reranker in logs.
	Name() string

	// Rerank selects up to topK item ids per category. The analysis value
	// is the raw vision analysis when available, nil otherwise.
	Rerank(ctx context.Context, analysis any, candidates *models.CategoryRecommendations, topK int) map[string][]string
}

// Completer is the slice of the vision client the LLM reranker needs: a
// plain text completion without image parts.
type Completer interface {
	// CompleteText sends the given text segments as one user message and
	// returns the assistant's reply.
	CompleteText(ctx context.Context, segments []string, maxTokens int, temperature float64) (string, error)

	// Available reports whether the vendor is configured.
	Available() bool
}
