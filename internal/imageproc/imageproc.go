// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package imageproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered decoders for Sniff and Resize. GIF is decodable here on
	// purpose: Sniff recognizes it, Validate rejects it for upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"

	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// Default upload limits, matching the stock configuration.
const (
	DefaultMaxBytes = 10 << 20
	DefaultMinDim   = 10
)

// Image is a decoded upload payload: raw encoded bytes plus the MIME type
// they arrived with. Bytes stay in their source encoding; nothing here holds
// decoded pixels.
type Image struct {
	Bytes []byte
	MIME  string
}

// Size returns the payload size in bytes.
func (i *Image) Size() int {
	return len(i.Bytes)
}

// DataURI re-encodes the image as a data URI.
func (i *Image) DataURI() string {
	return EncodeDataURI(i.Bytes, i.MIME)
}

// ValidationError describes why an upload was rejected. Code carries one of
// the models.ErrCode values so handlers can map it straight onto the error
// envelope; Field is filled in by the caller, which knows which part of the
// request the file came from.
type ValidationError struct {
	Code   string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Detail)
	}
	return e.Detail
}

// Validator checks uploads against configured limits.
type Validator struct {
	maxBytes int64
	minDim   int
}

// NewValidator creates a validator. Non-positive limits fall back to the
// defaults.
func NewValidator(maxBytes int64, minDim int) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if minDim <= 0 {
		minDim = DefaultMinDim
	}
	return &Validator{maxBytes: maxBytes, minDim: minDim}
}

// DefaultValidator applies the stock 10MB / 10px limits.
var DefaultValidator = NewValidator(DefaultMaxBytes, DefaultMinDim)

// Validate checks an upload against the default limits.
func Validate(f *models.APIFile) error {
	return DefaultValidator.Validate(f)
}

// Validate checks that the payload is present, declared as an allowed MIME
// type, within the size limit (estimated from base64 length before any
// decoding), actually decodable as jpeg/png/webp, and at least minDim pixels
// on each side.
//
// A declared type that differs from the sniffed format is tolerated as long
// as both are allowed; browsers mislabel re-saved images often enough that
// strict matching would reject real uploads.
func (v *Validator) Validate(f *models.APIFile) error {
	if f == nil || f.Base64 == "" {
		return &ValidationError{Code: models.ErrCodeValidation, Detail: "image payload is required"}
	}
	if !AllowedMIME(f.MimeType) {
		return &ValidationError{
			Code:   models.ErrCodeUnsupportedFormat,
			Detail: fmt.Sprintf("unsupported mime type %q: allowed types are image/jpeg, image/png, image/webp", f.MimeType),
		}
	}

	// Clients occasionally send the whole data URI in the base64 field.
	payload := f.Base64
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}

	if est := int64(EstimateSize(payload)); est > v.maxBytes {
		return &ValidationError{
			Code:   models.ErrCodeFileTooLarge,
			Detail: fmt.Sprintf("image is about %d bytes; the limit is %d", est, v.maxBytes),
		}
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return &ValidationError{Code: models.ErrCodeValidation, Detail: "base64 payload is not decodable"}
	}

	format, width, height, err := Sniff(raw)
	metrics.RecordImageDecode(formatLabel(format), err)
	if err != nil {
		return &ValidationError{Code: models.ErrCodeValidation, Detail: "payload is not a decodable image"}
	}
	if !allowedFormat(format) {
		return &ValidationError{
			Code:   models.ErrCodeUnsupportedFormat,
			Detail: fmt.Sprintf("decoded format %q is not allowed for upload", format),
		}
	}
	if width < v.minDim || height < v.minDim {
		return &ValidationError{
			Code:   models.ErrCodeImageTooSmall,
			Detail: fmt.Sprintf("image is %dx%d pixels; the minimum is %dx%d", width, height, v.minDim, v.minDim),
		}
	}

	return nil
}

// Sniff inspects encoded image bytes and reports the detected format name
// ("jpeg", "png", "webp", "gif") and pixel dimensions. Only headers are
// read; no full pixel decode happens.
func Sniff(data []byte) (format string, width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("sniff image: %w", err)
	}
	return format, cfg.Width, cfg.Height, nil
}

// Decode parses a data URI (data:<mime>;base64,<payload>) into raw bytes and
// the declared MIME type. Only base64 payloads are supported.
func Decode(dataURI string) (*Image, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return nil, errors.New("invalid data URI format: missing data: prefix")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("invalid data URI format: missing payload separator")
	}

	mime := header
	if i := strings.Index(header, ";"); i >= 0 {
		if !strings.Contains(header[i+1:], "base64") {
			return nil, errors.New("invalid data URI format: only base64 payloads are supported")
		}
		mime = header[:i]
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data URI format: %w", err)
	}
	return &Image{Bytes: raw, MIME: mime}, nil
}

// EncodeDataURI encodes raw image bytes as a data:<mime>;base64,<payload>
// URI. An empty mime falls back to image/png, the format the generation
// vendor emits when it omits one.
func EncodeDataURI(data []byte, mime string) string {
	if mime == "" {
		mime = models.MimePNG
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EstimateSize estimates the decoded byte size of a base64 string without
// decoding it: length x 3/4, minus padding.
func EstimateSize(b64 string) int {
	n := len(b64)
	if n == 0 {
		return 0
	}
	padding := 0
	switch {
	case strings.HasSuffix(b64, "=="):
		padding = 2
	case strings.HasSuffix(b64, "="):
		padding = 1
	}
	return n*3/4 - padding
}

// AllowedMIME reports whether a declared MIME type is accepted for upload.
func AllowedMIME(mime string) bool {
	switch mime {
	case models.MimeJPEG, models.MimePNG, models.MimeWebP:
		return true
	}
	return false
}

// allowedFormat reports whether a sniffed format name is accepted for
// upload. GIF sniffs fine but is not accepted.
func allowedFormat(format string) bool {
	switch format {
	case "jpeg", "png", "webp":
		return true
	}
	return false
}

func formatLabel(format string) string {
	if format == "" {
		return "unknown"
	}
	return format
}

// decodeBase64 accepts both padded and unpadded standard-alphabet payloads.
func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
