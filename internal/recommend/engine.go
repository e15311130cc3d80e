// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tomtom215/vestiarium/internal/catalog"
	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/vision"
)

// errEmptyAnalysis makes a successful vision call with no usable keywords
// fall through to the keyword strategy instead of producing an all-empty
// "ai" response.
var errEmptyAnalysis = errors.New("analysis produced no keywords")

// personKeywords is the keyword sweep for person-only requests: broad
// garment terms so every category surfaces candidates.
var personKeywords = []string{"top", "pants", "shoes", "casual", "basic"}

// Engine orchestrates the analysis strategy chain, catalog scoring, and
// the optional re-ranking stage. It is safe for concurrent use.
type Engine struct {
	store    *catalog.Store
	scorer   *Scorer
	analyzer vision.Analyzer
	reranker Reranker
	cfg      config.RecommendConfig
}

// NewEngine creates an engine over the given catalog and analyzer. The
// analyzer may be nil; every request then takes the keyword fallback.
func NewEngine(store *catalog.Store, analyzer vision.Analyzer, cfg config.RecommendConfig) *Engine {
	return &Engine{
		store:    store,
		scorer:   NewScorer(store, cfg.ScoreThreshold),
		analyzer: analyzer,
		cfg:      cfg,
	}
}

// SetReranker installs the post-scoring re-ranking stage.
func (e *Engine) SetReranker(r Reranker) {
	e.reranker = r
	logging.Info().
		Str("reranker", r.Name()).
		Msg("Registered recommendation reranker")
}

// Recommend produces recommendations from an uploaded outfit photo: person
// image, clothing images, or both.
//
// The only error is ErrNoInput on a request with no analyzable image;
// analysis failures degrade to the keyword fallback instead of failing.
func (e *Engine) Recommend(ctx context.Context, req *models.RecommendationRequest) (*Result, error) {
	if req == nil || !req.HasInput() {
		return nil, ErrNoInput
	}

	start := time.Now()
	chain := []strategy{
		e.styleStrategy(req.Person, req.ClothingItems),
		e.keywordStrategy(req.Person != nil, req.ClothingItems),
	}

	return e.finish(ctx, e.runChain(ctx, chain), req.Options, start), nil
}

// RecommendFromFitting produces recommendations from a generated try-on
// image, with the original clothing uploads driving the keyword fallback.
func (e *Engine) RecommendFromFitting(ctx context.Context, req *models.RecommendationFromFittingRequest) (*Result, error) {
	if req == nil || strings.TrimSpace(req.GeneratedImage) == "" {
		return nil, ErrNoInput
	}
	if !isDataURI(req.GeneratedImage) {
		return nil, ErrImageFormat
	}

	start := time.Now()
	chain := []strategy{
		e.clothingStrategy(req.GeneratedImage),
		e.keywordStrategy(true, req.OriginalClothingItems),
	}

	return e.finish(ctx, e.runChain(ctx, chain), req.Options, start), nil
}

// Status reports vendor and catalog readiness for the status route.
func (e *Engine) Status() models.RecommendStatus {
	status := models.RecommendStatus{
		CatalogService: models.CatalogStatus{
			Available:    e.store.Len() > 0,
			ProductCount: e.store.Len(),
		},
	}
	if e.analyzer != nil {
		status.AIService = models.AnalysisStatus{
			Available: e.analyzer.Available(),
			Config:    e.analyzer.Config(),
		}
	}
	return status
}

// runChain folds the strategies to the first success. The terminal keyword
// strategy cannot fail, so the chain always yields an analysis.
func (e *Engine) runChain(ctx context.Context, chain []strategy) *analysis {
	for i, st := range chain {
		res, err := st.run(ctx)
		if err == nil {
			return res
		}

		if i < len(chain)-1 {
			metrics.RecordAnalysisFallback()
			if errors.Is(err, vision.ErrNotConfigured) {
				logging.Debug().
					Str("strategy", st.name).
					Msg("Analysis strategy unavailable, using fallback")
			} else {
				logging.Warn().
					Err(err).
					Str("strategy", st.name).
					Msg("Analysis strategy failed, using fallback")
			}
		}
	}

	return &analysis{method: models.AnalysisMethodFallback}
}

// styleStrategy asks the vision vendor to describe the uploaded images.
func (e *Engine) styleStrategy(person *models.APIFile, clothing *models.ClothingItems) strategy {
	return strategy{
		name: "vision",
		run: func(ctx context.Context) (*analysis, error) {
			if !e.visionAvailable() {
				return nil, vision.ErrNotConfigured
			}

			style, err := e.analyzer.Analyze(ctx, analysisURIs(person, clothing))
			if err != nil {
				return nil, err
			}
			if style.IsEmpty() {
				return nil, errEmptyAnalysis
			}

			return &analysis{
				method:   models.AnalysisMethodAI,
				keywords: style.Keywords(),
				style:    style,
			}, nil
		},
	}
}

// clothingStrategy asks the vision vendor to describe a try-on composite.
func (e *Engine) clothingStrategy(imageURI string) strategy {
	return strategy{
		name: "vision",
		run: func(ctx context.Context) (*analysis, error) {
			if !e.visionAvailable() {
				return nil, vision.ErrNotConfigured
			}

			clothing, err := e.analyzer.AnalyzeClothing(ctx, imageURI)
			if err != nil {
				return nil, err
			}
			if clothing.IsEmpty() {
				return nil, errEmptyAnalysis
			}

			return &analysis{
				method:   models.AnalysisMethodAI,
				keywords: clothing.Keywords(),
				clothing: clothing,
			}, nil
		},
	}
}

// keywordStrategy is the terminal fallback: derive generic garment terms
// from whichever inputs are present. It cannot fail.
func (e *Engine) keywordStrategy(hasPerson bool, clothing *models.ClothingItems) strategy {
	return strategy{
		name: "keyword",
		run: func(ctx context.Context) (*analysis, error) {
			return &analysis{
				method:   models.AnalysisMethodFallback,
				keywords: fallbackKeywords(hasPerson, clothing),
			}, nil
		},
	}
}

// fallbackKeywords derives keywords without a vision model: each filled
// clothing slot contributes its bucket's garment terms in canonical order,
// and a person image alone contributes the broad sweep.
func fallbackKeywords(hasPerson bool, clothing *models.ClothingItems) []string {
	var kws []string
	if clothing != nil {
		for _, slot := range clothing.Present() {
			kws = append(kws, bucketTags[slot]...)
		}
	}
	if len(kws) == 0 && hasPerson {
		kws = append(kws, personKeywords...)
	}
	return kws
}

// finish scores the derived keywords, applies the optional re-ranking
// stage, and assembles the result.
func (e *Engine) finish(ctx context.Context, res *analysis, opts *models.RecommendationOptions, start time.Time) *Result {
	recs := e.scoreAndRank(ctx, res, opts)

	result := &Result{
		Method:          res.method,
		Style:           res.style,
		Clothing:        res.clothing,
		Recommendations: recs,
		Elapsed:         time.Since(start),
	}

	items := countItems(&recs)
	metrics.RecordRecommendation(res.method, result.Elapsed, items)
	logging.Debug().
		Str("method", res.method).
		Int("keywords", len(res.keywords)).
		Int("items", items).
		Dur("elapsed", result.Elapsed).
		Msg("Recommendation complete")

	return result
}

// scoreAndRank scores the catalog and, when a reranker is installed,
// offers it a wider candidate pool and applies its selection. A nil
// selection keeps the heuristic order.
func (e *Engine) scoreAndRank(ctx context.Context, res *analysis, opts *models.RecommendationOptions) models.CategoryRecommendations {
	limit := opts.Limit()
	if e.reranker == nil {
		return e.scorer.FindSimilar(res.keywords, opts)
	}

	pool := e.scorer.findSimilar(res.keywords, opts, limit*3)

	selected := e.reranker.Rerank(ctx, rerankAnalysis(res), &pool, e.rerankTopK(limit))
	if selected == nil {
		truncateAll(&pool, limit)
		return pool
	}

	applySelection(&pool, selected, limit)
	return pool
}

// rerankTopK returns the per-category id budget for the reranker.
func (e *Engine) rerankTopK(limit int) int {
	if e.cfg.RerankTopK > 0 {
		return e.cfg.RerankTopK
	}
	return limit
}

// rerankAnalysis returns whichever raw analysis the chain produced, or nil
// on the fallback path.
func rerankAnalysis(res *analysis) any {
	switch {
	case res.style != nil:
		return res.style
	case res.clothing != nil:
		return res.clothing
	default:
		return nil
	}
}

// applySelection replaces each category list with the reranker's picks in
// pick order. Ids the pool does not contain are skipped; a category the
// reranker returned nothing for comes back empty, mirroring that the model
// judged no candidate a good fit.
func applySelection(recs *models.CategoryRecommendations, selected map[string][]string, limit int) {
	for _, category := range models.Categories {
		current := recs.ByCategory(category)
		byID := make(map[string]models.RecommendationItem, len(current))
		for _, item := range current {
			byID[item.ID] = item
		}

		picked := make([]models.RecommendationItem, 0, len(selected[category]))
		for _, id := range selected[category] {
			if item, ok := byID[id]; ok {
				picked = append(picked, item)
			}
		}
		if len(picked) > limit {
			picked = picked[:limit]
		}
		recs.SetCategory(category, picked)
	}
}

// truncateAll caps every category list at the request limit.
func truncateAll(recs *models.CategoryRecommendations, limit int) {
	for _, category := range models.Categories {
		if list := recs.ByCategory(category); len(list) > limit {
			recs.SetCategory(category, list[:limit])
		}
	}
}

// analysisURIs collects the data URIs for style analysis: person first,
// then clothing slots in canonical order.
func analysisURIs(person *models.APIFile, clothing *models.ClothingItems) []string {
	var uris []string
	if person != nil {
		uris = append(uris, person.DataURI())
	}
	if clothing != nil {
		for _, f := range clothing.Files() {
			uris = append(uris, f.DataURI())
		}
	}
	return uris
}

// visionAvailable reports whether the analyzer can take a request.
func (e *Engine) visionAvailable() bool {
	return e.analyzer != nil && e.analyzer.Available()
}

// isDataURI is the cheap shape check for generated images. Full byte
// validation belongs to the generation path; the analysis vendor receives
// the URI as-is.
func isDataURI(s string) bool {
	return strings.HasPrefix(s, "data:") && strings.Contains(s, ";base64,")
}

func countItems(recs *models.CategoryRecommendations) int {
	return len(recs.Top) + len(recs.Pants) + len(recs.Shoes) + len(recs.Accessories)
}
