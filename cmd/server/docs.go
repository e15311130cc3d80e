// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package main provides the Vestiarium HTTP server
//
// Vestiarium composites person and clothing photos into virtual try-on
// images and recommends matching catalog products.
//
// @title Vestiarium API
// @version 1.0
// @description AI virtual try-on and style recommendation service for fashion retail
// @description
// @description ## Features
// @description
// @description - **Virtual Try-On**: Composite a person photo with up to three clothing items (top, pants, shoes) into a single try-on image via Gemini image generation
// @description - **Style Recommendations**: Azure OpenAI vision analysis of the generated image, with catalog keyword scoring as fallback
// @description - **Product Catalog**: Local JSON catalog with category grouping, price filtering, and match scores
// @description - **Image Proxy**: CORS-safe proxy for external product images with in-memory caching
// @description
// @description ## Degraded Modes
// @description
// @description Both AI providers are optional. Without a Gemini key, `/api/generate` returns 503 `SERVICE_UNAVAILABLE`.
// @description Without Azure OpenAI credentials, recommendations skip vision analysis and fall back to
// @description keyword scoring. `/api/generate/status` and `/api/recommend/status` report which providers are active.
// @description
// @description ## Rate Limiting
// @description
// @description Per-IP limits per minute: 10 generation requests, 30 recommendation requests, 120 status requests.
// @description Exceeding a limit returns 429 `RATE_LIMITED`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "error": {
// @description     "message": "Human-readable error message",
// @description     "code": "ERROR_CODE",
// @description     "requestId": "a1b2c3d4"
// @description   }
// @description }
// @description ```
// @description Validation errors add a `field` naming the offending input. In development
// @description mode, unexpected errors also carry an abbreviated `stack`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/vestiarium/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /
// @schemes http https
//
// @tag.name TryOn
// @tag.description Virtual try-on image generation from person and clothing photos
//
// @tag.name Recommend
// @tag.description Style recommendations, catalog statistics, and recommendation service status
//
// @tag.name Proxy
// @tag.description CORS-safe image proxy for external product images
//
// @tag.name Core
// @tag.description Health probes and service introspection
package main
