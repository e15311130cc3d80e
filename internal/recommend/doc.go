// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package recommend turns an outfit photo or a generated try-on image into
// scored product recommendations from the in-memory catalog.
//
// # Architecture
//
// A request flows through three stages:
//
//   - Analysis: an ordered strategy chain derives keywords from the input.
//     The vision strategy asks the analysis vendor to describe the images;
//     the keyword strategy derives generic garment terms from whichever
//     inputs are present and cannot fail. The chain folds to the first
//     strategy that succeeds, so a vendor outage degrades the response to
//     analysisMethod "fallback" instead of an error.
//   - Scoring: every catalog item is scored against the keywords (+1.0 for
//     a full keyword substring match, +0.5 for a token match), bucketed by
//     garment tag, ordered by descending score with catalog-order
//     tie-breaks, and truncated to the request's per-category limit.
//   - Re-ranking (optional, off by default): the scored candidates are
//     offered to the language model for a final ordering. Any failure keeps
//     the heuristic order; re-ranking never degrades availability.
//
// # Determinism
//
// Scoring is a pure function of the catalog and the keyword list. The
// catalog is immutable after load and ties break on catalog position, so
// identical inputs always produce identical ordered output.
//
// # Usage
//
//	engine := recommend.NewEngine(store, analyzer, cfg)
//	engine.SetReranker(recommend.NewLLMReranker(analyzer, cfg))
//
//	result, err := engine.Recommend(ctx, &models.RecommendationRequest{
//	    ClothingItems: &models.ClothingItems{Top: &topImage},
//	})
//
// # Thread Safety
//
// The engine holds no mutable state besides the injected read-only catalog
// store, so all methods are safe for concurrent use.
package recommend
