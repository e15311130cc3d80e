// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package imageproc normalizes image payloads moving through the API:
// upload validation, data URI encoding and decoding, format sniffing, and
// downscaling.
//
// Everything here is a pure transformation over bytes already in memory.
// Images are never written to disk; a payload exists only for the lifetime
// of the request that carried it.
//
// # Validation
//
// Validator gates uploads before they reach a vendor call. Checks run
// cheapest first: presence, declared MIME type (jpeg/png/webp), estimated
// size from base64 length, base64 decode, header sniff, and finally the
// pixel dimension floor. Failures come back as *ValidationError carrying a
// models.ErrCode, so handlers map them onto the error envelope without
// string matching.
//
// GIF is deliberately asymmetric: Sniff recognizes it (the proxy and tools
// inspect arbitrary fetched images), Validate rejects it for upload.
//
// # Data URIs
//
// Decode and EncodeDataURI convert between raw bytes and the
// data:<mime>;base64,<payload> form the frontend exchanges with the API.
// The round trip is lossless: Decode(EncodeDataURI(b, m)) yields b and m.
//
// # Resizing
//
// Resize downscales with Lanczos resampling via disintegration/imaging and
// re-encodes in the source MIME type (webp through chai2010/webp, jpeg and
// png through the stdlib encoders). The default target is a 224x224 fit
// that preserves aspect and never upscales.
package imageproc
