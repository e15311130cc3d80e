// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package models defines data structures for the Vestiarium application.

This package contains all data models used throughout the application: catalog
records, API request/response structures, vision analysis shapes, and the
uniform error envelope. It serves as the single source of truth for data
structure definitions and wire formats.

Key Components:

  - CatalogItem: Product record loaded from the catalog JSON file
  - APIFile: Request-scoped base64 image payload (never persisted)
  - VirtualTryOnRequest/Response: try-on generation contract
  - RecommendationRequest/Response: recommendation pipeline contract
  - StyleAnalysis / ClothingAnalysis: vision model output shapes
  - ErrorResponse: uniform error envelope with stable machine codes

Model Categories:

1. Catalog Models:
  - CatalogItem: Immutable product record (id, title, price, tags, category)
  - CatalogStats: Aggregate counts and price range, computed at load
  - RecommendationItem: CatalogItem projected with a relevance score

2. Try-On Models:
  - APIFile: base64 payload + MIME type (jpeg/png/webp whitelist)
  - ClothingItems: Optional top/pants/shoes garment slots
  - VirtualTryOnRequest: person photo + at least one garment
  - VirtualTryOnResponse: generated image as an inline data URI

3. Recommendation Models:
  - RecommendationOptions: per-category cap, price bounds, tag blocklist
  - StyleAnalysis: facet keyword lists from an outfit photo
  - ClothingAnalysis: per-garment keyword lists from a generated image
  - CategoryRecommendations: scored items grouped by category

4. Envelope Models:
  - ErrorResponse/ErrorBody: the only error shape any route returns
  - APIResponse/Metadata: wrapper for introspection endpoints
  - HealthStatus, ServiceInfo: probe and discovery payloads

Usage Example - Try-On Request:

	import "github.com/tomtom215/vestiarium/internal/models"

	req := models.VirtualTryOnRequest{
	    Person: models.APIFile{Base64: personB64, MimeType: models.MimeJPEG},
	    ClothingItems: models.ClothingItems{
	        Top: &models.APIFile{Base64: topB64, MimeType: models.MimePNG},
	    },
	}
	slots := req.ClothingItems.Present() // ["top"]

Usage Example - Error Envelope:

	import "github.com/tomtom215/vestiarium/internal/models"

	resp := models.ErrorResponse{
	    Error: models.ErrorBody{
	        Message:   "person image is required",
	        Code:      models.ErrCodeValidation,
	        Field:     "person",
	        RequestID: requestID,
	    },
	}
	json.NewEncoder(w).Encode(resp)

Wire Format:

All request/response fields use the frontend's camelCase contract
(generatedImage, analysisMethod, maxPerCategory); the vision analysis facet
keys keep the model-prompt snake_case contract (detected_style,
overall_style) because the AI response is passed through verbatim.

Thread Safety:

All models are plain data structures: immutable after creation, safe for
concurrent reads, no internal locking. APIFile payloads are request-scoped
and eligible for collection once the response is written.

See Also:

  - internal/catalog: loads and serves CatalogItem records
  - internal/recommend: produces CategoryRecommendations
  - internal/api: handlers marshaling these models
*/
package models
