// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestClothingItemsPresent(t *testing.T) {
	t.Parallel()

	top := &APIFile{Base64: "dG9w", MimeType: MimePNG}
	pants := &APIFile{Base64: "cGFudHM=", MimeType: MimeJPEG}
	shoes := &APIFile{Base64: "c2hvZXM=", MimeType: MimeWebP}

	tests := []struct {
		name  string
		items ClothingItems
		want  []string
	}{
		{"empty", ClothingItems{}, nil},
		{"top only", ClothingItems{Top: top}, []string{"top"}},
		{"pants and shoes", ClothingItems{Pants: pants, Shoes: shoes}, []string{"pants", "shoes"}},
		{"all slots", ClothingItems{Top: top, Pants: pants, Shoes: shoes}, []string{"top", "pants", "shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.items.Present()
			if len(got) != len(tt.want) {
				t.Fatalf("Present() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Present()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}

			files := tt.items.Files()
			if len(files) != len(tt.want) {
				t.Errorf("Files() length = %d, want %d (must parallel Present())", len(files), len(tt.want))
			}

			if tt.items.IsEmpty() != (len(tt.want) == 0) {
				t.Errorf("IsEmpty() = %v with %d slots filled", tt.items.IsEmpty(), len(tt.want))
			}
		})
	}
}

func TestRecommendationOptionsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *RecommendationOptions
		want int
	}{
		{"nil options", nil, DefaultMaxPerCategory},
		{"zero value", &RecommendationOptions{}, DefaultMaxPerCategory},
		{"explicit", &RecommendationOptions{MaxPerCategory: 10}, 10},
		{"negative treated as default", &RecommendationOptions{MaxPerCategory: -1}, DefaultMaxPerCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.opts.Limit(); got != tt.want {
				t.Errorf("Limit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecommendationRequestHasInput(t *testing.T) {
	t.Parallel()

	person := &APIFile{Base64: "cGVyc29u", MimeType: MimeJPEG}
	top := &APIFile{Base64: "dG9w", MimeType: MimePNG}

	tests := []struct {
		name string
		req  RecommendationRequest
		want bool
	}{
		{"empty request", RecommendationRequest{}, false},
		{"person only", RecommendationRequest{Person: person}, true},
		{"clothing only", RecommendationRequest{ClothingItems: &ClothingItems{Top: top}}, true},
		{"empty clothing struct", RecommendationRequest{ClothingItems: &ClothingItems{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.HasInput(); got != tt.want {
				t.Errorf("HasInput() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleAnalysisKeywords(t *testing.T) {
	t.Parallel()

	analysis := &StyleAnalysis{
		DetectedStyle:   []string{"casual", "street"},
		Colors:          []string{"black"},
		Categories:      []string{"hoodie"},
		StylePreference: []string{"oversized"},
	}

	got := analysis.Keywords()
	want := []string{"casual", "street", "black", "hoodie", "oversized"}

	if len(got) != len(want) {
		t.Fatalf("Keywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keywords()[%d] = %q, want %q (facet order must be stable)", i, got[i], want[i])
		}
	}

	if analysis.IsEmpty() {
		t.Error("IsEmpty() = true for populated analysis")
	}
	if !(&StyleAnalysis{}).IsEmpty() {
		t.Error("IsEmpty() = false for zero analysis")
	}
	if (*StyleAnalysis)(nil).Keywords() != nil {
		t.Error("nil analysis should yield nil keywords")
	}
}

func TestClothingAnalysisKeywords(t *testing.T) {
	t.Parallel()

	analysis := &ClothingAnalysis{
		Top:          []string{"hoodie", "black"},
		Shoes:        []string{"sneakers"},
		OverallStyle: []string{"street"},
	}

	got := analysis.Keywords()
	want := []string{"hoodie", "black", "sneakers", "street"}

	if len(got) != len(want) {
		t.Fatalf("Keywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoryRecommendationsByCategory(t *testing.T) {
	t.Parallel()

	recs := CategoryRecommendations{}
	items := []RecommendationItem{{ID: "p1", Title: "Slim Jeans", Price: 45000, Category: CategoryPants}}

	for _, cat := range Categories {
		recs.SetCategory(cat, items)
		if got := recs.ByCategory(cat); len(got) != 1 || got[0].ID != "p1" {
			t.Errorf("ByCategory(%q) did not return items set via SetCategory", cat)
		}
	}

	if recs.ByCategory("headwear") != nil {
		t.Error("ByCategory with unrecognized category should return nil")
	}
}

// TestWireFieldNames pins the camelCase request/response contract the
// frontend depends on. Renaming a JSON field is a breaking change even when
// the Go identifier stays the same.
func TestWireFieldNames(t *testing.T) {
	t.Parallel()

	score := 1.5
	resp := RecommendationResponse{
		Recommendations: CategoryRecommendations{
			Top: []RecommendationItem{{
				ID: "p1", Title: "Hoodie", Price: 39000,
				Tags: []string{"hoodie"}, Category: CategoryTop,
				ImageURL: "https://example.com/p1.jpg", Score: &score,
			}},
		},
		AnalysisMethod: AnalysisMethodAI,
		StyleAnalysis:  &StyleAnalysis{DetectedStyle: []string{"casual"}},
		RequestID:      "req-1",
		Timestamp:      time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	body := string(data)
	for _, field := range []string{
		`"recommendations"`, `"analysisMethod"`, `"styleAnalysis"`,
		`"requestId"`, `"timestamp"`, `"imageUrl"`, `"score"`,
		`"detected_style"`,
	} {
		if !strings.Contains(body, field) {
			t.Errorf("response JSON missing field %s: %s", field, body)
		}
	}

	env := ErrorResponse{Error: ErrorBody{
		Message: "person image is required",
		Code:    ErrCodeValidation,
		Field:   "person",
	}}
	data, err = json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal envelope failed: %v", err)
	}
	body = string(data)
	for _, field := range []string{`"error"`, `"message"`, `"code"`, `"field"`} {
		if !strings.Contains(body, field) {
			t.Errorf("error envelope missing field %s: %s", field, body)
		}
	}
	if strings.Contains(body, `"stack"`) {
		t.Errorf("empty stack must be omitted from envelope: %s", body)
	}
}

func TestScoreOmittedWhenNil(t *testing.T) {
	t.Parallel()

	item := RecommendationItem{ID: "p1", Title: "Hoodie", Price: 39000, Tags: []string{}, Category: CategoryTop}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"score"`) {
		t.Errorf("nil score must be omitted: %s", data)
	}
}
