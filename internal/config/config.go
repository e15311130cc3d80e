// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for all application components including
// the HTTP server, AI vendor clients (Gemini, Azure OpenAI), catalog, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Serving:
//     - Server: HTTP server configuration (port, host, timeout, environment)
//     - Security: CORS origins, trusted proxies, rate limiting
//     - Limits: Upload size and image dimension bounds
//
//  2. AI Vendors:
//     - Gemini: Try-on image generation (key ring, model, retries)
//     - Azure: Vision analysis via Azure OpenAI chat completions
//
//  3. Recommendation:
//     - Catalog: Product catalog file path
//     - Recommend: Scoring threshold and optional LLM re-ranking
//
//  4. Infrastructure:
//     - Proxy: Image proxy fetch timeout
//     - Cache: TTL cache for introspection responses
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Gemini.Model, cfg.Catalog.Path, etc. are now populated
//
// Example - Access configuration values:
//
//	store, err := catalog.Load(cfg.Catalog.Path)
//	client := gemini.New(cfg.Gemini)
//	server := http.Server{Addr: cfg.Server.Addr()}
//
// Validation:
// The Load() function validates all fields and returns an error if:
//   - Values are out of range (port, retries, timeouts)
//   - Credentials contain placeholder values (REPLACE_ME, CHANGEME, ...)
//   - CORS is configured with a wildcard in production
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Limits    LimitsConfig    `koanf:"limits"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	Azure     AzureConfig     `koanf:"azure"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Proxy     ProxyConfig     `koanf:"proxy"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - PORT: Listen port (default: 3000, matching the frontend dev proxy)
//   - HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 60s; generation calls can
//     hold a request for the full Gemini retry budget)
//   - ENVIRONMENT: "development" or "production" (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - FRONTEND_URL: Allowed CORS origins, comma-separated
//     (default: http://localhost:5173 plus the 127.0.0.1 variant)
//   - TRUSTED_PROXIES: Proxy addresses allowed to set X-Forwarded-For
//   - RATE_LIMIT_GENERATE / RATE_LIMIT_RECOMMEND / RATE_LIMIT_STATUS:
//     Per-IP request budgets per window for each route group
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (testing only)
//
// Generation is the most expensive route (a 30s upstream call per request),
// so its budget is the strictest.
type SecurityConfig struct {
	CORSOrigins        []string      `koanf:"cors_origins"`
	TrustedProxies     []string      `koanf:"trusted_proxies"`
	RateLimitGenerate  int           `koanf:"rate_limit_generate"`
	RateLimitRecommend int           `koanf:"rate_limit_recommend"`
	RateLimitStatus    int           `koanf:"rate_limit_status"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
}

// LimitsConfig bounds uploaded payloads.
//
// Environment Variables:
//   - MAX_UPLOAD_SIZE_MB: Maximum decoded image size in MB (default: 10)
//   - MIN_IMAGE_DIMENSION: Minimum width/height in pixels (default: 10)
//
// The HTTP body cap is derived from MaxUploadMB with base64 overhead
// (4/3) plus headroom for the person image and three garment slots.
type LimitsConfig struct {
	MaxUploadMB  int `koanf:"max_upload_mb"`
	MinImageDim  int `koanf:"min_image_dim"`
	MaxBodyBytes int `koanf:"max_body_bytes"`
}

// MaxUploadBytes returns the per-image decoded size limit in bytes.
func (l LimitsConfig) MaxUploadBytes() int {
	return l.MaxUploadMB * 1024 * 1024
}

// BodyLimit returns the request body cap in bytes. When max_body_bytes is
// unset, it is derived from the upload limit: four image slots at base64
// encoding overhead, rounded up.
func (l LimitsConfig) BodyLimit() int64 {
	if l.MaxBodyBytes > 0 {
		return int64(l.MaxBodyBytes)
	}
	// 4 slots x 4/3 base64 expansion, plus JSON framing slack
	return int64(l.MaxUploadBytes()) * 4 * 4 / 3
}

// GeminiConfig holds the try-on generation client settings.
//
// Environment Variables:
//   - GEMINI_API_KEY: Single API key (API_KEY also accepted for parity with
//     the Node deployment)
//   - GEMINI_API_KEYS: Multiple keys, comma/semicolon/space separated.
//     Takes precedence over GEMINI_API_KEY when set.
//   - GEMINI_MODEL: Model name (default: gemini-2.5-flash-image-preview)
//   - GEMINI_ENDPOINT: API base URL (default: the public Generative
//     Language endpoint; override for regional proxies and tests)
//   - GEMINI_TIMEOUT_MS: Per-call timeout in milliseconds (default: 30000)
//   - GEMINI_MAX_RETRIES: Per-key retry budget (default: 3)
//   - GEMINI_TEMPERATURE: Sampling temperature (default: 0.0 for
//     reproducible composites)
//   - GEMINI_REQUESTS_PER_MINUTE: Client-side pacing per key (default: 10)
//
// Key Rotation:
// The client walks the key ring in order. An invalid-key rejection advances
// to the next key immediately; retryable errors back off exponentially
// within the same key's retry budget.
type GeminiConfig struct {
	APIKey            string   `koanf:"api_key"`
	APIKeys           []string `koanf:"api_keys"`
	Model             string   `koanf:"model"`
	Endpoint          string   `koanf:"endpoint"`
	TimeoutMS         int64    `koanf:"timeout_ms"`
	MaxRetries        int      `koanf:"max_retries"`
	Temperature       float64  `koanf:"temperature"`
	RequestsPerMinute int      `koanf:"requests_per_minute"`
}

// KeyRing resolves the effective API key list: GEMINI_API_KEYS entries are
// split further on semicolons and whitespace (the frontend's .env examples
// use all three separators), deduplicated in order; GEMINI_API_KEY is the
// single-key fallback.
func (g GeminiConfig) KeyRing() []string {
	var raw []string
	if len(g.APIKeys) > 0 {
		raw = g.APIKeys
	} else if g.APIKey != "" {
		raw = []string{g.APIKey}
	}

	seen := make(map[string]bool, len(raw))
	var keys []string
	for _, entry := range raw {
		for _, tok := range strings.FieldsFunc(entry, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		}) {
			tok = strings.TrimSpace(tok)
			if tok == "" || seen[tok] {
				continue
			}
			seen[tok] = true
			keys = append(keys, tok)
		}
	}
	return keys
}

// Timeout returns the per-call timeout as a time.Duration.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutMS) * time.Millisecond
}

// Configured reports whether at least one API key is present.
func (g GeminiConfig) Configured() bool {
	return len(g.KeyRing()) > 0
}

// AzureConfig holds the vision analysis client settings.
//
// Environment Variables:
//   - AZURE_OPENAI_ENDPOINT: Resource endpoint (https://<name>.openai.azure.com)
//   - AZURE_OPENAI_KEY: API key, sent in the api-key header
//   - AZURE_OPENAI_DEPLOYMENT_ID: Deployment name (default: gpt-4o)
//   - AZURE_OPENAI_API_VERSION: API version (default: 2024-02-15-preview)
//   - AZURE_OPENAI_TIMEOUT_MS: Per-call timeout in ms (default: 15000;
//     analysis is bounded tighter than generation because a slow analysis
//     only delays the fallback path)
//   - AZURE_OPENAI_TEMPERATURE: Sampling temperature (default: 0.1)
//   - AZURE_OPENAI_MAX_TOKENS: Completion cap (default: 500)
type AzureConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	APIKey      string  `koanf:"api_key"`
	Deployment  string  `koanf:"deployment"`
	APIVersion  string  `koanf:"api_version"`
	TimeoutMS   int64   `koanf:"timeout_ms"`
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
}

// Timeout returns the per-call timeout as a time.Duration.
func (a AzureConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// Configured reports whether both endpoint and key are present.
func (a AzureConfig) Configured() bool {
	return a.Endpoint != "" && a.APIKey != ""
}

// CatalogConfig holds the product catalog source.
//
// Environment Variables:
//   - CATALOG_PATH: Catalog JSON file path (default: data/catalog.json)
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// RecommendConfig holds recommendation pipeline tuning.
//
// Environment Variables:
//   - RECOMMEND_RERANK: Enable the optional LLM re-ranking stage
//     (default: false; failures never degrade availability)
//   - RECOMMEND_RERANK_TOP_K: Ids requested per category from the
//     re-ranker (default: 3)
//   - RECOMMEND_SCORE_THRESHOLD: Minimum score for an item to surface
//     (default: 0; items must score strictly above it)
//   - LLM_RERANK_MAX_TOKENS / LLM_RERANK_TEMPERATURE: Re-ranker call
//     parameters (defaults: 400 / 0.2)
type RecommendConfig struct {
	Rerank            bool    `koanf:"rerank"`
	RerankTopK        int     `koanf:"rerank_top_k"`
	RerankMaxTokens   int     `koanf:"rerank_max_tokens"`
	RerankTemperature float64 `koanf:"rerank_temperature"`
	ScoreThreshold    float64 `koanf:"score_threshold"`
}

// ProxyConfig holds the image proxy route settings.
//
// Environment Variables:
//   - PROXY_TIMEOUT_MS: Upstream fetch timeout in ms (default: 15000)
//   - PROXY_MAX_BYTES: Maximum upstream body size (default: 20MB)
type ProxyConfig struct {
	TimeoutMS int64 `koanf:"timeout_ms"`
	MaxBytes  int64 `koanf:"max_bytes"`
}

// Timeout returns the fetch timeout as a time.Duration.
func (p ProxyConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

// CacheConfig holds the TTL cache settings for introspection responses
// (catalog stats, service status). Domain responses are never cached.
//
// Environment Variables:
//   - CACHE_ENABLED: Master toggle (default: true)
//   - CACHE_TTL: Entry lifetime (default: 60s)
//   - CACHE_CLEANUP_INTERVAL: Expired-entry sweep interval (default: 5m)
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include file:line caller info (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load is the configuration entry point. Configuration is loaded in the
// following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. config.yaml (CONFIG_PATH override, then well-known paths)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}
