// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package vision implements outfit analysis on the Azure OpenAI chat
completions API with vision input.

Two analyses exist: style analysis over uploaded person/garment photos
(facets: detected_style, colors, categories, style_preference) and
per-garment analysis over a generated try-on composite (top, pants, shoes,
overall_style). Both prompt for a bare JSON object; ExtractJSON tolerates
the ways models actually answer (markdown fences, prose around the object).

# Failure Shape

Every failure path returns an empty-but-non-nil analysis alongside the
error. The recommendation engine treats analysis as advisory: a failed or
empty analysis selects the keyword fallback strategy, never a failed
request. Construction without credentials succeeds in degraded mode, with
Available reporting false.

# Bounds

One shot per analysis, 15s default timeout, no retries: a slow analysis
only delays the fallback, so the budget stays tight. Calls go through the
azure circuit breaker, which fails fast once the vendor is misbehaving.
*/
package vision
