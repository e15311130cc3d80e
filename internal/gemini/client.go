// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vestiarium/internal/breaker"
	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/imageproc"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// maxErrorBodySize caps how much of an error response body is read for
// diagnostics, preventing unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// ringEntry pairs an API key with its own pacing limiter: quota is
// per key on the vendor side, so pacing must be per key here too.
type ringEntry struct {
	key     string
	limiter *rate.Limiter
}

// keyRing is the rotating API key list. The index persists across requests:
// once a key is rejected the ring stays advanced, so a known-bad key is not
// retried first on every request. advance wraps, which means a fully failed
// sweep leaves the index where it started.
type keyRing struct {
	mu      sync.Mutex
	entries []ringEntry
	idx     int
}

func newKeyRing(keys []string, perMinute int) *keyRing {
	entries := make([]ringEntry, len(keys))
	for i, key := range keys {
		lim := rate.NewLimiter(rate.Inf, 0)
		if perMinute > 0 {
			lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
		}
		entries[i] = ringEntry{key: key, limiter: lim}
	}
	return &keyRing{entries: entries}
}

func (r *keyRing) size() int {
	return len(r.entries)
}

// current returns the entry at the ring index. Callers must ensure the ring
// is non-empty.
func (r *keyRing) current() ringEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[r.idx]
}

func (r *keyRing) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = (r.idx + 1) % len(r.entries)
}

// Client calls the Gemini generateContent endpoint to composite a person
// photo with garment product photos.
//
// Resilience mechanisms:
//   - Key ring: invalid-key rejections advance to the next configured key
//     immediately; the advanced position persists for the process lifetime
//   - Retries: up to MaxRetries attempts per key with exponential backoff
//     (2s, 4s, 8s) for retryable failures
//   - Circuit breaker: opens at >= 60% failure rate, failing fast instead
//     of queueing doomed upstream calls
//   - Pacing: per-key client-side rate limit from GEMINI_REQUESTS_PER_MINUTE
//
// Thread safety: safe for concurrent use. The key ring is internally
// synchronized; everything else is read-only after New.
type Client struct {
	cfg       config.GeminiConfig
	ring      *keyRing
	client    *http.Client
	breaker   *breaker.Breaker[string]
	retryBase time.Duration // base for exponential backoff, shortened in tests
}

// New creates a generation client from configuration. A missing key ring is
// not fatal: the client constructs in degraded mode and Generate returns
// ErrNotConfigured until a key is supplied, keeping recommendation and
// catalog routes usable on a partially configured deployment.
func New(cfg config.GeminiConfig) *Client {
	keys := cfg.KeyRing()
	if len(keys) == 0 {
		logging.Warn().Msg("No Gemini API key configured, try-on generation disabled")
	} else {
		logging.Info().
			Int("keys", len(keys)).
			Str("model", cfg.Model).
			Dur("timeout", cfg.Timeout()).
			Int("max_retries", cfg.MaxRetries).
			Msg("Gemini generation client initialized")
	}

	return &Client{
		cfg:       cfg,
		ring:      newKeyRing(keys, cfg.RequestsPerMinute),
		client:    &http.Client{Timeout: cfg.Timeout()},
		breaker:   breaker.New[string]("gemini"),
		retryBase: time.Second,
	}
}

// Available reports whether at least one API key is configured.
func (c *Client) Available() bool {
	return c.ring.size() > 0
}

// Config returns the non-secret client configuration for the status route.
func (c *Client) Config() models.GenerationConfig {
	return models.GenerationConfig{
		Model:      c.cfg.Model,
		TimeoutMS:  c.cfg.TimeoutMS,
		MaxRetries: c.cfg.MaxRetries,
		KeyCount:   c.ring.size(),
		Configured: c.Available(),
	}
}

// Generate composites the person image with the provided garments and
// returns the result as a data URI. A call that completes but yields no
// image part returns ("", nil); the handler decides how to surface that.
func (c *Client) Generate(ctx context.Context, person *models.APIFile, clothing models.ClothingItems) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}

	parts, err := buildParts(person, clothing)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
			Temperature:        c.cfg.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	start := time.Now()
	dataURI, err := c.generateWithRotation(ctx, payload)

	switch {
	case err != nil:
		metrics.RecordGeneration(outcomeFor(err), time.Since(start), 0)
		return "", err
	case dataURI == "":
		metrics.RecordGeneration(metrics.OutcomeNoImage, time.Since(start), 0)
		logging.Warn().Msg("Gemini response carried no image part")
		return "", nil
	default:
		imageBytes := 0
		if _, b64, ok := strings.Cut(dataURI, ","); ok {
			imageBytes = imageproc.EstimateSize(b64)
		}
		metrics.RecordGeneration(metrics.OutcomeSuccess, time.Since(start), imageBytes)
		return dataURI, nil
	}
}

// generateWithRotation sweeps the key ring once: each key gets up to
// MaxRetries attempts with exponential backoff, an invalid-key rejection
// abandons the key's remaining budget, and the ring advances between keys.
// Breaker rejections abort the sweep outright since retrying into an open
// circuit only wastes the budget. After a full failed sweep the last error
// is returned.
func (c *Client) generateWithRotation(ctx context.Context, payload []byte) (string, error) {
	maxRetries := c.cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	keys := c.ring.size()
	var lastErr error

	for swept := 0; swept < keys; swept++ {
		entry := c.ring.current()

		for attempt := 1; attempt <= maxRetries; attempt++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			if err := entry.limiter.Wait(ctx); err != nil {
				return "", err
			}

			dataURI, err := c.attempt(ctx, entry.key, payload)
			if err == nil {
				return dataURI, nil
			}
			lastErr = err

			if breaker.IsOpen(err) {
				return "", err
			}
			if IsInvalidKey(err) {
				logging.Warn().Err(err).Msg("Gemini rejected API key, advancing key ring")
				break
			}

			if attempt < maxRetries {
				metrics.RecordUpstreamRetry(metrics.VendorGemini)
				backoff := c.retryBase * time.Duration(1<<uint(attempt))
				logging.Debug().
					Int("attempt", attempt).
					Dur("backoff", backoff).
					Err(err).
					Msg("Gemini call failed, backing off")
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
		}

		c.ring.advance()
		metrics.RecordKeyRotation()
	}

	return "", fmt.Errorf("generation failed after trying %d key(s): %w", keys, lastErr)
}

// attempt performs one breaker-protected call and records its upstream
// metric. A completed call with no image counts as no_image, not success:
// the distinction is what makes prompt regressions visible on the
// dashboard.
func (c *Client) attempt(ctx context.Context, key string, payload []byte) (string, error) {
	start := time.Now()
	dataURI, err := c.breaker.Execute(func() (string, error) {
		return c.call(ctx, key, payload)
	})

	outcome := outcomeFor(err)
	if err == nil && dataURI == "" {
		outcome = metrics.OutcomeNoImage
	}
	metrics.RecordUpstreamCall(metrics.VendorGemini, "generateContent", outcome, time.Since(start))

	return dataURI, err
}

// call performs the raw HTTP exchange with a single key.
func (c *Client) call(ctx context.Context, key string, payload []byte) (string, error) {
	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(c.cfg.Endpoint, "/"), c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp.StatusCode, readBodyForError(resp.Body))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	return gr.firstImage(), nil
}

// readBodyForError reads at most maxErrorBodySize of a response body for
// error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}
