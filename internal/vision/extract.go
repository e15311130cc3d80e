// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package vision

import (
	"strings"
)

// ExtractJSON pulls a JSON object out of a model answer. Models asked for
// "ONLY JSON" still fence the object in markdown or wrap it in prose, so
// extraction tries, in order:
//
//  1. A fenced block: the text after the last "```json" marker up to the
//     next fence (a bare "```" fence falls through to the brace scan when
//     the cut does not start with "{").
//  2. A brace scan: the span from the first "{" to the last "}".
//
// The returned string is not validated; callers unmarshal it and handle
// failure there. ok is false when no candidate object exists at all.
func ExtractJSON(s string) (string, bool) {
	if strings.Contains(s, "```") {
		candidate := s
		if i := strings.LastIndex(candidate, "```json"); i >= 0 {
			candidate = candidate[i+len("```json"):]
		}
		if i := strings.Index(candidate, "```"); i >= 0 {
			candidate = candidate[:i]
		}
		candidate = strings.TrimSpace(candidate)
		if strings.HasPrefix(candidate, "{") {
			return candidate, true
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1], true
	}
	return "", false
}
