// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// ResizeOptions controls Resize.
type ResizeOptions struct {
	Width  int
	Height int

	// KeepAspect fits the image inside Width x Height without distortion
	// and without upscaling. When false the output is exactly
	// Width x Height.
	KeepAspect bool

	// Quality applies to lossy re-encodes (jpeg, webp), 1-100.
	Quality int
}

// DefaultResizeOptions targets the 224x224 thumbnail size used for analysis
// payloads.
func DefaultResizeOptions() ResizeOptions {
	return ResizeOptions{Width: 224, Height: 224, KeepAspect: true, Quality: 85}
}

// Resize decodes the image, downscales it with Lanczos resampling, and
// re-encodes it in its declared MIME type.
func Resize(img *Image, opts ResizeOptions) (*Image, error) {
	start := time.Now()

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("resize target %dx%d is invalid", opts.Width, opts.Height)
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultResizeOptions().Quality
	}

	src, _, err := image.Decode(bytes.NewReader(img.Bytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", img.MIME, err)
	}

	var dst image.Image
	if opts.KeepAspect {
		dst = imaging.Fit(src, opts.Width, opts.Height, imaging.Lanczos)
	} else {
		dst = imaging.Resize(src, opts.Width, opts.Height, imaging.Lanczos)
	}

	out, err := encodeImage(dst, img.MIME, opts.Quality)
	if err != nil {
		return nil, err
	}

	metrics.ImageResizeDuration.Observe(time.Since(start).Seconds())
	return &Image{Bytes: out, MIME: img.MIME}, nil
}

// encodeImage writes pixels back out in the requested MIME type.
func encodeImage(m image.Image, mime string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch mime {
	case models.MimeJPEG:
		err = jpeg.Encode(&buf, m, &jpeg.Options{Quality: quality})
	case models.MimePNG:
		err = png.Encode(&buf, m)
	case models.MimeWebP:
		err = webp.Encode(&buf, m, &webp.Options{Quality: float32(quality)})
	default:
		return nil, fmt.Errorf("cannot encode mime type %q", mime)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s image: %w", mime, err)
	}

	return buf.Bytes(), nil
}
