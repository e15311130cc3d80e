// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/models"
)

// proxyGet invokes ProxyImage with the given query url.
func proxyGet(t *testing.T, handler *Handler, rawURL string) *httptest.ResponseRecorder {
	t.Helper()

	target := "/api/proxy/image"
	if rawURL != "" {
		target += "?url=" + url.QueryEscape(rawURL)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ProxyImage(w, req)
	return w
}

// testPNGBytes returns raw encoded PNG bytes.
func testPNGBytes(t *testing.T, size int) []byte {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(testPNG(t, size))
	if err != nil {
		t.Fatalf("Failed to decode test PNG: %v", err)
	}
	return data
}

// TestProxyImage_MethodNotAllowed tests ProxyImage with a POST
func TestProxyImage_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/proxy/image", nil)
	w := httptest.NewRecorder()
	handler.ProxyImage(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestProxyImage_MissingURL tests the missing url query parameter
func TestProxyImage_MissingURL(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, nil)

	w := proxyGet(t, handler, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	body := decodeError(t, w)
	if body.Code != models.ErrCodeValidation {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", body.Code)
	}
	if body.Field != "url" {
		t.Errorf("Expected field url, got %q", body.Field)
	}
}

// TestProxyImage_RejectsNonHTTP tests scheme and shape validation of the url
func TestProxyImage_RejectsNonHTTP(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, nil)

	urls := []string{
		"ftp://example.com/shirt.png",
		"file:///etc/passwd",
		"not-a-url",
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			w := proxyGet(t, handler, u)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400 for %q, got %d", u, w.Code)
			}
		})
	}
}

// TestProxyImage_Success tests the fetch path and that repeat fetches are
// served from the cache without touching the upstream again
func TestProxyImage_Success(t *testing.T) {
	t.Parallel()

	raw := testPNGBytes(t, 16)
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Accept") != "image/*" {
			t.Error("Expected Accept: image/* on the upstream request")
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	t.Cleanup(server.Close)

	handler := newTestHandler(t, nil)

	for i := 0; i < 2; i++ {
		w := proxyGet(t, handler, server.URL+"/shirt.png")

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp models.ProxyImageResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.MimeType != "image/png" {
			t.Errorf("Expected mime type image/png, got %q", resp.MimeType)
		}
		decoded, err := base64.StdEncoding.DecodeString(resp.Base64)
		if err != nil {
			t.Fatalf("Response base64 not decodable: %v", err)
		}
		if len(decoded) != len(raw) {
			t.Errorf("Expected %d image bytes, got %d", len(raw), len(decoded))
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 upstream hit with the second fetch cached, got %d", got)
	}
}

// TestProxyImage_SniffedMIME tests MIME detection when the upstream serves
// an image under a generic content type
func TestProxyImage_SniffedMIME(t *testing.T) {
	t.Parallel()

	raw := testPNGBytes(t, 16)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(raw)
	}))
	t.Cleanup(server.Close)

	handler := newTestHandler(t, nil)

	w := proxyGet(t, handler, server.URL+"/cdn-object")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp models.ProxyImageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.MimeType != "image/png" {
		t.Errorf("Expected sniffed mime type image/png, got %q", resp.MimeType)
	}
}

// TestProxyImage_NotImage tests the 415 for upstream resources that are not
// images
func TestProxyImage_NotImage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>product page</body></html>")
	}))
	t.Cleanup(server.Close)

	handler := newTestHandler(t, nil)

	w := proxyGet(t, handler, server.URL+"/product")

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("Expected status 415, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeUnsupportedMediaType {
		t.Errorf("Expected code UNSUPPORTED_MEDIA_TYPE, got %s", body.Code)
	}
}

// TestProxyImage_UpstreamError tests the 502 for upstream failure statuses
func TestProxyImage_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	handler := newTestHandler(t, nil)

	w := proxyGet(t, handler, server.URL+"/missing.png")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeBadGateway {
		t.Errorf("Expected code BAD_GATEWAY, got %s", body.Code)
	}
}

// TestProxyImage_TooLarge tests the configured size cap
func TestProxyImage_TooLarge(t *testing.T) {
	t.Parallel()

	raw := testPNGBytes(t, 16)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	t.Cleanup(server.Close)

	handler := newTestHandler(t, nil)
	handler.config.Proxy.MaxBytes = 16

	w := proxyGet(t, handler, server.URL+"/huge.png")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != models.ErrCodeBadGateway {
		t.Errorf("Expected code BAD_GATEWAY, got %s", body.Code)
	}
}
