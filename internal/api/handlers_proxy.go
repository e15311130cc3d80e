// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/vestiarium/internal/imageproc"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// defaultProxyMaxBytes caps upstream image bodies when no limit is
// configured.
const defaultProxyMaxBytes = 20 << 20

// Proxy failure sentinels, mapped onto status codes in respondProxyError.
var (
	errProxyUpstream = errors.New("upstream fetch failed")
	errProxyTooLarge = errors.New("upstream image exceeds the proxy size limit")
	errProxyNotImage = errors.New("upstream resource is not an image")
)

// ProxyImage handles remote product image fetch requests
//
// @Summary Proxy a remote product image
// @Description Fetches a remote product image server-side, bypassing browser CORS restrictions, and returns it re-encoded as base64 for canvas use. Responses are cached in-process by source URL.
// @Tags Proxy
// @Produce json
// @Param url query string true "Absolute http(s) URL of the image"
// @Success 200 {object} models.ProxyImageResponse "Fetched image"
// @Failure 400 {object} models.ErrorResponse "Missing or non-http(s) URL"
// @Failure 415 {object} models.ErrorResponse "Upstream resource is not an image"
// @Failure 502 {object} models.ErrorResponse "Upstream fetch failed"
// @Router /api/proxy/image [get]
func (h *Handler) ProxyImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		respondFieldError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"Query parameter url is required", "url")
		return
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respondFieldError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"url must be an absolute http or https URL", "url")
		return
	}

	if data, mimeType, ok := h.images.Get(rawURL); ok {
		respondProxyImage(w, data, mimeType)
		return
	}

	start := time.Now()
	data, mimeType, err := h.fetchImage(r.Context(), rawURL)
	if err != nil {
		h.respondProxyError(w, r, err, time.Since(start))
		return
	}
	metrics.RecordProxyFetch(metrics.OutcomeSuccess, time.Since(start))

	h.images.Add(rawURL, data, mimeType)
	respondProxyImage(w, data, mimeType)
}

// fetchImage retrieves a remote image and enforces the size and
// content-type policies. Failures are one of the proxy sentinels or a
// wrapped transport error.
func (h *Handler) fetchImage(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", "vestiarium/"+Version)

	resp, err := h.proxyClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errProxyUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: upstream returned status %d", errProxyUpstream, resp.StatusCode)
	}

	maxBytes := h.proxyMaxBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading body: %w", errProxyUpstream, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", errProxyTooLarge
	}

	mimeType := imageMIME(resp.Header.Get("Content-Type"), data)
	if mimeType == "" {
		return nil, "", errProxyNotImage
	}
	return data, mimeType, nil
}

func (h *Handler) proxyMaxBytes() int64 {
	if h.config != nil && h.config.Proxy.MaxBytes > 0 {
		return h.config.Proxy.MaxBytes
	}
	return defaultProxyMaxBytes
}

// respondProxyImage renders fetched image bytes as the documented
// base64 JSON body.
func respondProxyImage(w http.ResponseWriter, data []byte, mimeType string) {
	respondJSON(w, http.StatusOK, &models.ProxyImageResponse{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	})
}

// respondProxyError maps fetch failures onto the envelope and records the
// fetch outcome: non-image upstreams to 415, everything else to 502.
func (h *Handler) respondProxyError(w http.ResponseWriter, r *http.Request, err error, elapsed time.Duration) {
	switch {
	case errors.Is(err, errProxyNotImage):
		metrics.RecordProxyFetch(metrics.OutcomeError, elapsed)
		respondError(w, r, http.StatusUnsupportedMediaType, models.ErrCodeUnsupportedMediaType,
			"The requested resource is not an image")
	case errors.Is(err, errProxyTooLarge):
		metrics.RecordProxyFetch(metrics.OutcomeError, elapsed)
		respondError(w, r, http.StatusBadGateway, models.ErrCodeBadGateway,
			"The upstream image exceeds the proxy size limit")
	default:
		outcome := metrics.OutcomeError
		if isNetTimeout(err) {
			outcome = metrics.OutcomeTimeout
		}
		metrics.RecordProxyFetch(outcome, elapsed)
		logging.CtxWarn(r.Context()).Err(err).Msg("Image proxy fetch failed")
		respondError(w, r, http.StatusBadGateway, models.ErrCodeBadGateway,
			"Failed to fetch the upstream image")
	}
}

// imageMIME resolves the MIME type of fetched bytes: the upstream
// Content-Type header wins when it declares an image; otherwise the
// payload is sniffed, which covers CDNs that serve images under generic
// or missing content types. Empty means the bytes are not a known image.
func imageMIME(contentType string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	if format, _, _, err := imageproc.Sniff(data); err == nil {
		return "image/" + format
	}
	return ""
}

func isNetTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
