// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/breaker"
	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// maxErrorBodySize caps how much of an error response body is read for
// diagnostics.
const maxErrorBodySize = 64 * 1024 // 64KB

// Chat completions wire shapes (the subset this service uses).

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message      assistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason,omitempty"`
}

type assistantMessage struct {
	Content string `json:"content"`
}

// AzureClient implements Analyzer against an Azure OpenAI deployment with
// vision input (gpt-4o by default).
//
// Thread safety: safe for concurrent use; all fields are read-only after
// NewAzureClient.
type AzureClient struct {
	cfg     config.AzureConfig
	client  *http.Client
	breaker *breaker.Breaker[string]
}

// NewAzureClient creates an analysis client from configuration. Missing
// credentials are not fatal: the client constructs in degraded mode,
// Available reports false, and the recommendation engine falls back to
// keyword analysis.
func NewAzureClient(cfg config.AzureConfig) *AzureClient {
	if !cfg.Configured() {
		logging.Warn().Msg("Azure OpenAI not configured, vision analysis disabled")
	} else {
		logging.Info().
			Str("deployment", cfg.Deployment).
			Str("api_version", cfg.APIVersion).
			Dur("timeout", cfg.Timeout()).
			Msg("Vision analysis client initialized")
	}

	return &AzureClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout()},
		breaker: breaker.New[string]("azure"),
	}
}

// Available reports whether endpoint and key are configured.
func (c *AzureClient) Available() bool {
	return c.cfg.Configured()
}

// Config returns the non-secret client configuration for the status route.
func (c *AzureClient) Config() models.AnalysisConfig {
	return models.AnalysisConfig{
		DeploymentID: c.cfg.Deployment,
		TimeoutMS:    c.cfg.TimeoutMS,
		Configured:   c.cfg.Configured(),
	}
}

// Analyze describes the style of the provided images. On any failure the
// returned analysis is empty but non-nil.
func (c *AzureClient) Analyze(ctx context.Context, imageURIs []string) (*models.StyleAnalysis, error) {
	raw, err := c.complete(ctx, stylePrompt, imageURIs)
	if err != nil {
		metrics.RecordAnalysis("style", outcomeFor(err))
		return &models.StyleAnalysis{}, err
	}

	var analysis models.StyleAnalysis
	if err := parseAnalysis(raw, &analysis); err != nil {
		metrics.RecordAnalysis("style", metrics.OutcomeError)
		logging.Warn().Err(err).Msg("Style analysis response not parseable")
		return &models.StyleAnalysis{}, err
	}

	ensureLists(&analysis.DetectedStyle, &analysis.Colors, &analysis.Categories, &analysis.StylePreference)
	metrics.RecordAnalysis("style", metrics.OutcomeSuccess)
	return &analysis, nil
}

// AnalyzeClothing describes the garments in a generated try-on composite.
// On any failure the returned analysis is empty but non-nil.
func (c *AzureClient) AnalyzeClothing(ctx context.Context, imageURI string) (*models.ClothingAnalysis, error) {
	raw, err := c.complete(ctx, clothingPrompt, []string{imageURI})
	if err != nil {
		metrics.RecordAnalysis("clothing", outcomeFor(err))
		return &models.ClothingAnalysis{}, err
	}

	var analysis models.ClothingAnalysis
	if err := parseAnalysis(raw, &analysis); err != nil {
		metrics.RecordAnalysis("clothing", metrics.OutcomeError)
		logging.Warn().Err(err).Msg("Clothing analysis response not parseable")
		return &models.ClothingAnalysis{}, err
	}

	ensureLists(&analysis.Top, &analysis.Pants, &analysis.Shoes, &analysis.OverallStyle)
	metrics.RecordAnalysis("clothing", metrics.OutcomeSuccess)
	return &analysis, nil
}

// CompleteText sends the given text segments as one user message and
// returns the assistant reply. The recommendation re-ranker uses this to
// run text-only completions over the same deployment, breaker, and auth as
// image analysis, with its own token and temperature budget.
func (c *AzureClient) CompleteText(ctx context.Context, segments []string, maxTokens int, temperature float64) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}
	if len(segments) == 0 {
		return "", errors.New("completion requires at least one text segment")
	}

	parts := make([]contentPart, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, contentPart{Type: "text", Text: s})
	}

	payload, err := json.Marshal(chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: parts}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	start := time.Now()
	content, err := c.breaker.Execute(func() (string, error) {
		return c.call(ctx, payload)
	})
	metrics.RecordUpstreamCall(metrics.VendorAzure, "chat.completions", outcomeFor(err), time.Since(start))

	return content, err
}

// complete performs one breaker-protected chat completion and returns the
// assistant message content.
func (c *AzureClient) complete(ctx context.Context, prompt string, imageURIs []string) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}
	if len(imageURIs) == 0 {
		return "", ErrNoImages
	}

	parts := make([]contentPart, 0, len(imageURIs)+1)
	parts = append(parts, contentPart{Type: "text", Text: prompt})
	for _, uri := range imageURIs {
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: uri, Detail: "high"}})
	}

	payload, err := json.Marshal(chatRequest{
		Messages:       []chatMessage{{Role: "user", Content: parts}},
		MaxTokens:      c.cfg.MaxTokens,
		Temperature:    c.cfg.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	start := time.Now()
	content, err := c.breaker.Execute(func() (string, error) {
		return c.call(ctx, payload)
	})
	metrics.RecordUpstreamCall(metrics.VendorAzure, "chat.completions", outcomeFor(err), time.Since(start))

	return content, err
}

// call performs the raw HTTP exchange.
func (c *AzureClient) call(ctx context.Context, payload []byte) (string, error) {
	reqURL := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimSuffix(c.cfg.Endpoint, "/"),
		url.PathEscape(c.cfg.Deployment),
		url.QueryEscape(c.cfg.APIVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp.StatusCode, readBodyForError(resp.Body))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("analysis response has no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// parseAnalysis extracts the JSON object from a model answer and unmarshals
// it into out.
func parseAnalysis(raw string, out interface{}) error {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return errors.New("no JSON object in analysis response")
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("failed to parse analysis JSON: %w", err)
	}
	return nil
}

// ensureLists replaces nil slices with empty ones so facet lists are never
// null in responses.
func ensureLists(lists ...*[]string) {
	for _, l := range lists {
		if *l == nil {
			*l = []string{}
		}
	}
}

// apiError is a non-2xx response from the chat completions endpoint.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("azure OpenAI error (HTTP %d): %s", e.StatusCode, e.Message)
}

// newAPIError extracts the vendor's error message from the standard
// {"error": {...}} envelope, falling back to the raw body.
func newAPIError(status int, body []byte) *apiError {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	return &apiError{StatusCode: status, Message: msg}
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

// isTimeout reports whether err is a deadline expiry from the context or
// the HTTP client.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// outcomeFor maps an error to the shared upstream outcome label.
func outcomeFor(err error) string {
	var ae *apiError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case breaker.IsOpen(err):
		return metrics.OutcomeUnavailable
	case isTimeout(err):
		return metrics.OutcomeTimeout
	case errors.As(err, &ae):
		switch ae.StatusCode {
		case http.StatusTooManyRequests:
			return metrics.OutcomeRateLimited
		case http.StatusUnauthorized, http.StatusForbidden:
			return metrics.OutcomeInvalidKey
		}
		return metrics.OutcomeError
	default:
		return metrics.OutcomeError
	}
}
