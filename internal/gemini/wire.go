// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package gemini

import (
	"github.com/tomtom215/vestiarium/internal/models"
)

// Wire shapes for the generateContent REST endpoint. Field names follow the
// protojson canonical form (lowerCamel): the API accepts snake_case in
// requests but always emits lowerCamel in responses, so using one form for
// both keeps the types symmetric.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	// ResponseModalities is pinned to ["IMAGE"]; without it the model
	// prefers a text answer describing the outfit instead of rendering it.
	ResponseModalities []string `json:"responseModalities"`
	Temperature        float64  `json:"temperature"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// firstImage walks the first candidate's parts and returns the first inline
// image as a data URI, or "" when no part carries image data. A text-only
// answer is not an error at this layer: the model occasionally responds
// with a refusal or commentary instead of a composite, and the caller
// decides how to surface that.
func (r *generateResponse) firstImage() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		mime := p.InlineData.MimeType
		if mime == "" {
			mime = models.MimePNG
		}
		return "data:" + mime + ";base64," + p.InlineData.Data
	}
	return ""
}
