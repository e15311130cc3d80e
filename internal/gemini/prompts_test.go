// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package gemini

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/vestiarium/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	got := buildPrompt([]string{"top", "pants", "shoes"})

	if !strings.HasPrefix(got, safetyDirectives) {
		t.Error("prompt does not start with the safety directives")
	}
	if !strings.Contains(got, "\n\nTASK:\n") {
		t.Error("prompt is missing the TASK separator")
	}
	if !strings.Contains(got, "wearing: the top, the pants, the shoes.") {
		t.Errorf("prompt does not enumerate all garments:\n%s", got)
	}

	single := buildPrompt([]string{"pants"})
	if !strings.Contains(single, "wearing: the pants.") {
		t.Errorf("single-garment prompt enumeration wrong:\n%s", single)
	}
}

func TestBuildParts_Order(t *testing.T) {
	person := &models.APIFile{Base64: "cGVyc29u", MimeType: models.MimeJPEG}
	top := &models.APIFile{Base64: "dG9w", MimeType: models.MimePNG}
	pants := &models.APIFile{Base64: "cGFudHM=", MimeType: models.MimeJPEG}
	shoes := &models.APIFile{Base64: "c2hvZXM=", MimeType: models.MimeWebP}

	parts, err := buildParts(person, models.ClothingItems{Top: top, Pants: pants, Shoes: shoes})
	if err != nil {
		t.Fatalf("buildParts() error = %v", err)
	}
	if len(parts) != 5 {
		t.Fatalf("parts count = %d, want 5 (text + person + 3 garments)", len(parts))
	}

	if parts[0].Text == "" || parts[0].InlineData != nil {
		t.Error("first part must be text only")
	}
	wantData := []string{"cGVyc29u", "dG9w", "cGFudHM=", "c2hvZXM="}
	for i, want := range wantData {
		p := parts[i+1]
		if p.InlineData == nil {
			t.Fatalf("part %d has no inline data", i+1)
		}
		if p.InlineData.Data != want {
			t.Errorf("part %d data = %q, want %q", i+1, p.InlineData.Data, want)
		}
		if p.Text != "" {
			t.Errorf("part %d carries unexpected text %q", i+1, p.Text)
		}
	}
}

func TestBuildParts_StripsDataURIPrefix(t *testing.T) {
	person := &models.APIFile{Base64: "data:image/jpeg;base64,cGVyc29u", MimeType: models.MimeJPEG}
	top := &models.APIFile{Base64: "dG9w", MimeType: models.MimePNG}

	parts, err := buildParts(person, models.ClothingItems{Top: top})
	if err != nil {
		t.Fatalf("buildParts() error = %v", err)
	}
	if got := parts[1].InlineData.Data; got != "cGVyc29u" {
		t.Errorf("person payload = %q, want prefix stripped", got)
	}
}

func TestBuildParts_DefaultMIME(t *testing.T) {
	person := &models.APIFile{Base64: "cGVyc29u", MimeType: models.MimeJPEG}
	top := &models.APIFile{Base64: "dG9w"} // no MIME declared

	parts, err := buildParts(person, models.ClothingItems{Top: top})
	if err != nil {
		t.Fatalf("buildParts() error = %v", err)
	}
	if got := parts[2].InlineData.MimeType; got != models.MimeJPEG {
		t.Errorf("garment MIME = %q, want default %q", got, models.MimeJPEG)
	}
}

func TestBuildParts_Errors(t *testing.T) {
	person := &models.APIFile{Base64: "cGVyc29u", MimeType: models.MimeJPEG}
	top := &models.APIFile{Base64: "dG9w", MimeType: models.MimePNG}

	tests := []struct {
		name     string
		person   *models.APIFile
		clothing models.ClothingItems
		wantErr  error
	}{
		{"no clothing", person, models.ClothingItems{}, ErrNoClothing},
		{"nil person", nil, models.ClothingItems{Top: top}, ErrNoPerson},
		{"person without base64", &models.APIFile{MimeType: models.MimeJPEG}, models.ClothingItems{Top: top}, ErrNoPerson},
		{"person without mime", &models.APIFile{Base64: "cGVyc29u"}, models.ClothingItems{Top: top}, ErrNoPerson},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildParts(tt.person, tt.clothing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("buildParts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
