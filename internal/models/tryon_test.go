// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

import (
	"reflect"
	"testing"
)

func TestAPIFile_Payload(t *testing.T) {
	tests := []struct {
		name string
		file APIFile
		want string
	}{
		{
			name: "bare payload passes through",
			file: APIFile{Base64: "aGVsbG8=", MimeType: MimeJPEG},
			want: "aGVsbG8=",
		},
		{
			name: "data URI prefix stripped",
			file: APIFile{Base64: "data:image/png;base64,aGVsbG8=", MimeType: MimePNG},
			want: "aGVsbG8=",
		},
		{
			name: "data prefix without comma left alone",
			file: APIFile{Base64: "data:image/png;base64", MimeType: MimePNG},
			want: "data:image/png;base64",
		},
		{
			name: "empty",
			file: APIFile{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Payload(); got != tt.want {
				t.Errorf("Payload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIFile_DataURI(t *testing.T) {
	tests := []struct {
		name string
		file APIFile
		want string
	}{
		{
			name: "declared mime used",
			file: APIFile{Base64: "aGVsbG8=", MimeType: MimeWebP},
			want: "data:image/webp;base64,aGVsbG8=",
		},
		{
			name: "missing mime defaults to jpeg",
			file: APIFile{Base64: "aGVsbG8="},
			want: "data:image/jpeg;base64,aGVsbG8=",
		},
		{
			name: "existing prefix replaced not doubled",
			file: APIFile{Base64: "data:image/png;base64,aGVsbG8=", MimeType: MimePNG},
			want: "data:image/png;base64,aGVsbG8=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.DataURI(); got != tt.want {
				t.Errorf("DataURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClothingItems_Present(t *testing.T) {
	top := &APIFile{Base64: "dG9w", MimeType: MimeJPEG}
	pants := &APIFile{Base64: "cGFudHM=", MimeType: MimeJPEG}
	shoes := &APIFile{Base64: "c2hvZXM=", MimeType: MimeJPEG}

	tests := []struct {
		name  string
		items ClothingItems
		want  []string
	}{
		{"empty", ClothingItems{}, nil},
		{"top only", ClothingItems{Top: top}, []string{"top"}},
		{"shoes only", ClothingItems{Shoes: shoes}, []string{"shoes"}},
		{"all slots in canonical order", ClothingItems{Shoes: shoes, Top: top, Pants: pants}, []string{"top", "pants", "shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.items.Present(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Present() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClothingItems_Files(t *testing.T) {
	top := &APIFile{Base64: "dG9w", MimeType: MimeJPEG}
	shoes := &APIFile{Base64: "c2hvZXM=", MimeType: MimeJPEG}

	items := ClothingItems{Top: top, Shoes: shoes}
	files := items.Files()
	if len(files) != 2 {
		t.Fatalf("Files() returned %d entries, want 2", len(files))
	}
	if files[0] != top || files[1] != shoes {
		t.Error("Files() order does not match Present() order")
	}

	if got := (ClothingItems{}).Files(); got != nil {
		t.Errorf("Files() on empty items = %v, want nil", got)
	}
}

func TestClothingItems_IsEmpty(t *testing.T) {
	if !(ClothingItems{}).IsEmpty() {
		t.Error("IsEmpty() = false for zero value, want true")
	}
	if (ClothingItems{Pants: &APIFile{Base64: "cA==", MimeType: MimeJPEG}}).IsEmpty() {
		t.Error("IsEmpty() = true with pants set, want false")
	}
}
