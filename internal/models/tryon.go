// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

import (
	"strings"
	"time"
)

// Supported upload MIME types. GIF is deliberately excluded: the generative
// model accepts only static images, and animated payloads waste the upload
// budget.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWebP = "image/webp"
)

// APIFile is a request-scoped image payload: raw bytes base64-encoded plus
// the declared MIME type. Files are never written to disk; an APIFile lives
// only for the duration of one request.
//
// Example:
//
//	{
//	  "base64": "/9j/4AAQSkZJRgABAQAA...",
//	  "mimeType": "image/jpeg"
//	}
type APIFile struct {
	Base64   string `json:"base64" validate:"required"`
	MimeType string `json:"mimeType" validate:"required,oneof=image/jpeg image/png image/webp"`
}

// Payload returns the bare base64 payload. Browser canvas exports arrive as
// full data URIs in the base64 field; vendor APIs want only the encoded
// bytes, so any data URI prefix is stripped.
func (f APIFile) Payload() string {
	if strings.HasPrefix(f.Base64, "data:") {
		if _, after, ok := strings.Cut(f.Base64, ","); ok {
			return after
		}
	}
	return f.Base64
}

// DataURI returns the payload as a data URI using the declared MIME type
// (image/jpeg when unset). Safe to call on payloads that already carry a
// prefix: the existing one is replaced, not doubled.
func (f APIFile) DataURI() string {
	mime := f.MimeType
	if mime == "" {
		mime = MimeJPEG
	}
	return "data:" + mime + ";base64," + f.Payload()
}

// ClothingItems maps garment slots to uploaded images. Every slot is
// optional, but a try-on request must fill at least one.
type ClothingItems struct {
	Top   *APIFile `json:"top,omitempty"`
	Pants *APIFile `json:"pants,omitempty"`
	Shoes *APIFile `json:"shoes,omitempty"`
}

// IsEmpty reports whether no garment slot is filled.
func (c ClothingItems) IsEmpty() bool {
	return c.Top == nil && c.Pants == nil && c.Shoes == nil
}

// Present returns the filled slot names in canonical order (top, pants,
// shoes). The order matters: prompt construction and fallback keyword
// derivation both depend on it.
func (c ClothingItems) Present() []string {
	var slots []string
	if c.Top != nil {
		slots = append(slots, "top")
	}
	if c.Pants != nil {
		slots = append(slots, "pants")
	}
	if c.Shoes != nil {
		slots = append(slots, "shoes")
	}
	return slots
}

// Files returns the filled slot files in canonical order, parallel to
// Present().
func (c ClothingItems) Files() []*APIFile {
	var files []*APIFile
	if c.Top != nil {
		files = append(files, c.Top)
	}
	if c.Pants != nil {
		files = append(files, c.Pants)
	}
	if c.Shoes != nil {
		files = append(files, c.Shoes)
	}
	return files
}

// VirtualTryOnRequest is the body of POST /api/generate.
//
// Example:
//
//	{
//	  "person": {"base64": "...", "mimeType": "image/jpeg"},
//	  "clothingItems": {
//	    "top": {"base64": "...", "mimeType": "image/png"}
//	  }
//	}
type VirtualTryOnRequest struct {
	Person        APIFile       `json:"person" validate:"required"`
	ClothingItems ClothingItems `json:"clothingItems"`
}

// VirtualTryOnResponse is the success body of POST /api/generate. The
// generated image is returned inline as a data URI so the frontend can
// render it without a second fetch.
type VirtualTryOnResponse struct {
	GeneratedImage string    `json:"generatedImage"`
	RequestID      string    `json:"requestId"`
	Timestamp      time.Time `json:"timestamp"`
}

// GenerationStatus is the body of GET /api/generate/status.
type GenerationStatus struct {
	Available bool             `json:"available"`
	Config    GenerationConfig `json:"config"`
}

// GenerationConfig describes the generation client without exposing
// credentials. Timeout is in milliseconds; KeyCount is the number of
// configured API keys, never the keys themselves.
type GenerationConfig struct {
	Model      string `json:"model"`
	TimeoutMS  int64  `json:"timeout"`
	MaxRetries int    `json:"maxRetries"`
	KeyCount   int    `json:"keyCount"`
	Configured bool   `json:"isConfigured"`
}
