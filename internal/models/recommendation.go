// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

import (
	"time"
)

// DefaultMaxPerCategory bounds each category list when the request does not
// specify a limit.
const DefaultMaxPerCategory = 3

// RecommendationOptions tunes scoring and filtering for a single request.
// All fields are optional; zero values fall back to defaults at the
// orchestrator boundary.
//
// Fields:
//   - MaxPerCategory: per-category result cap (1-20, default 3)
//   - MinPrice / MaxPrice: inclusive KRW bounds applied before scoring
//   - ExcludeTags: case-insensitive tag blocklist; one hit drops the item
//   - IncludeScore: echo relevance scores in the response
type RecommendationOptions struct {
	MaxPerCategory int      `json:"maxPerCategory,omitempty" validate:"omitempty,min=1,max=20"`
	MinPrice       *int     `json:"minPrice,omitempty" validate:"omitempty,min=0"`
	MaxPrice       *int     `json:"maxPrice,omitempty" validate:"omitempty,min=0"`
	ExcludeTags    []string `json:"excludeTags,omitempty"`
	IncludeScore   bool     `json:"includeScore,omitempty"`
}

// Limit returns the effective per-category cap.
func (o *RecommendationOptions) Limit() int {
	if o == nil || o.MaxPerCategory <= 0 {
		return DefaultMaxPerCategory
	}
	return o.MaxPerCategory
}

// RecommendationRequest is the body of POST /api/recommend. At least one of
// Person or ClothingItems must be present; the handler rejects the request
// before it reaches the recommendation engine otherwise.
type RecommendationRequest struct {
	Person        *APIFile               `json:"person,omitempty"`
	ClothingItems *ClothingItems         `json:"clothingItems,omitempty"`
	Options       *RecommendationOptions `json:"options,omitempty"`
}

// HasInput reports whether the request carries any analyzable image.
func (r *RecommendationRequest) HasInput() bool {
	if r.Person != nil {
		return true
	}
	return r.ClothingItems != nil && !r.ClothingItems.IsEmpty()
}

// RecommendationFromFittingRequest is the body of POST
// /api/recommend/from-fitting: the generated try-on result fed back for
// similar-item lookup.
type RecommendationFromFittingRequest struct {
	GeneratedImage        string                 `json:"generatedImage" validate:"required"`
	OriginalClothingItems *ClothingItems         `json:"originalClothingItems,omitempty"`
	Options               *RecommendationOptions `json:"options,omitempty"`
}

// Analysis method values reported in RecommendationResponse.AnalysisMethod.
const (
	AnalysisMethodAI       = "ai"
	AnalysisMethodFallback = "fallback"
)

// StyleAnalysis is the vision model's structured description of an uploaded
// outfit photo. Lists may be empty but are never null in responses.
//
// Example:
//
//	{
//	  "detected_style": ["casual", "street"],
//	  "colors": ["black", "white"],
//	  "categories": ["hoodie", "sneakers"],
//	  "style_preference": ["oversized", "comfortable"]
//	}
type StyleAnalysis struct {
	DetectedStyle   []string `json:"detected_style"`
	Colors          []string `json:"colors"`
	Categories      []string `json:"categories"`
	StylePreference []string `json:"style_preference"`
}

// Keywords flattens every facet list into one keyword slice, preserving
// facet order. The scorer consumes this directly.
func (a *StyleAnalysis) Keywords() []string {
	if a == nil {
		return nil
	}
	var kws []string
	kws = append(kws, a.DetectedStyle...)
	kws = append(kws, a.Colors...)
	kws = append(kws, a.Categories...)
	kws = append(kws, a.StylePreference...)
	return kws
}

// IsEmpty reports whether every facet list is empty, which is the shape the
// analysis adapter returns on failure.
func (a *StyleAnalysis) IsEmpty() bool {
	if a == nil {
		return true
	}
	return len(a.DetectedStyle) == 0 && len(a.Colors) == 0 &&
		len(a.Categories) == 0 && len(a.StylePreference) == 0
}

// ClothingAnalysis is the vision model's per-garment description of a
// generated try-on image: keyword lists keyed by garment region plus an
// overall style summary.
type ClothingAnalysis struct {
	Top          []string `json:"top"`
	Pants        []string `json:"pants"`
	Shoes        []string `json:"shoes"`
	OverallStyle []string `json:"overall_style"`
}

// Keywords flattens every region list into one keyword slice, preserving
// region order (top, pants, shoes, overall style).
func (a *ClothingAnalysis) Keywords() []string {
	if a == nil {
		return nil
	}
	var kws []string
	kws = append(kws, a.Top...)
	kws = append(kws, a.Pants...)
	kws = append(kws, a.Shoes...)
	kws = append(kws, a.OverallStyle...)
	return kws
}

// IsEmpty reports whether every region list is empty.
func (a *ClothingAnalysis) IsEmpty() bool {
	if a == nil {
		return true
	}
	return len(a.Top) == 0 && len(a.Pants) == 0 &&
		len(a.Shoes) == 0 && len(a.OverallStyle) == 0
}

// RecommendationResponse is the success body of both recommendation routes.
// StyleAnalysis is populated by /api/recommend, ClothingAnalysis by
// /api/recommend/from-fitting, and both only when AnalysisMethod is "ai".
type RecommendationResponse struct {
	Recommendations  CategoryRecommendations `json:"recommendations"`
	AnalysisMethod   string                  `json:"analysisMethod"`
	StyleAnalysis    *StyleAnalysis          `json:"styleAnalysis,omitempty"`
	ClothingAnalysis *ClothingAnalysis       `json:"clothingAnalysis,omitempty"`
	RequestID        string                  `json:"requestId"`
	Timestamp        time.Time               `json:"timestamp"`
}

// RecommendStatus is the body of GET /api/recommend/status.
//
// Example:
//
//	{
//	  "aiService": {
//	    "available": true,
//	    "config": {"deploymentId": "gpt-4o", "timeout": 15000, "isConfigured": true}
//	  },
//	  "catalogService": {"available": true, "productCount": 120}
//	}
type RecommendStatus struct {
	AIService      AnalysisStatus `json:"aiService"`
	CatalogService CatalogStatus  `json:"catalogService"`
}

// AnalysisStatus describes the vision analysis adapter without exposing
// credentials.
type AnalysisStatus struct {
	Available bool           `json:"available"`
	Config    AnalysisConfig `json:"config"`
}

// AnalysisConfig mirrors GenerationConfig for the vision vendor. Timeout is
// in milliseconds.
type AnalysisConfig struct {
	DeploymentID string `json:"deploymentId"`
	TimeoutMS    int64  `json:"timeout"`
	Configured   bool   `json:"isConfigured"`
}

// CatalogStatus reports catalog readiness for the status route.
type CatalogStatus struct {
	Available    bool `json:"available"`
	ProductCount int  `json:"productCount"`
}
