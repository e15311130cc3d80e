// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package gemini implements the virtual try-on generation client against the
Google Gemini generateContent REST API.

A generation request carries one combined text part (safety directives plus
the garment task) followed by the person photo and each garment product
photo as inline base64 parts. Response modalities are pinned to IMAGE and
temperature defaults to 0.0 so repeated requests over the same inputs
produce comparable composites.

# Key Rotation

GEMINI_API_KEYS may list several keys. The client keeps a ring with a
persistent index: an invalid-key rejection (401/403, or the vendor's
"API key not valid" 400 body) advances the ring immediately, so quota
rotation across free-tier keys costs one failed call rather than a retry
storm. Retryable failures (timeouts, 429, 5xx) back off exponentially
within the current key's retry budget before the ring advances.

# Degraded Mode

Construction never fails. Without keys, Available reports false and
Generate returns ErrNotConfigured, which the API layer maps to 503 while
the catalog and recommendation routes keep serving.

# No-Image Responses

A completed call whose candidate carries only text returns ("", nil).
Refusals and commentary happen; they are an upstream quality signal
(recorded as the no_image outcome) rather than a transport error.
*/
package gemini
