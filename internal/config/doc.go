// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

/*
Package config provides centralized configuration management for Vestiarium.

This package handles loading, validation, and parsing of environment variables
for all application components. It ensures consistent configuration across the
service and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded in layers, later layers overriding earlier ones:

  - Built-in defaults (every optional setting has one)
  - YAML config file (config.yaml, or CONFIG_PATH override)
  - Environment variables (primary source in Docker deployments)

# Configuration Structure

The package organizes configuration into logical groups:

  - ServerConfig: HTTP server settings (host, port, timeout, environment)
  - SecurityConfig: CORS origins and per-route-group rate limits
  - LimitsConfig: Upload size and image dimension bounds
  - GeminiConfig: Try-on generation client (key ring, model, retries)
  - AzureConfig: Vision analysis client (endpoint, deployment, version)
  - CatalogConfig: Product catalog source file
  - RecommendConfig: Scoring threshold and optional LLM re-ranking
  - ProxyConfig: Image proxy fetch limits
  - CacheConfig: TTL cache for introspection responses
  - LoggingConfig: Log levels and output formats

# Environment Variables

HTTP Server (ServerConfig):
  - PORT: Listen port (default: 3000)
  - HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Read/write timeout (default: 60s)
  - ENVIRONMENT: development or production (default: development)

Security (SecurityConfig):
  - FRONTEND_URL: Allowed CORS origins, comma-separated
    (default: http://localhost:5173,http://127.0.0.1:5173)
  - TRUSTED_PROXIES: Proxies allowed to set X-Forwarded-For
  - RATE_LIMIT_GENERATE: Generation requests per window per IP (default: 10)
  - RATE_LIMIT_RECOMMEND: Recommendation requests per window per IP (default: 30)
  - RATE_LIMIT_STATUS: Status/introspection requests per window per IP (default: 120)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (testing only)

Upload Limits (LimitsConfig):
  - MAX_UPLOAD_SIZE_MB: Max decoded image size in MB (default: 10)
  - MIN_IMAGE_DIMENSION: Min width/height in pixels (default: 10)

Gemini Generation (GeminiConfig):
  - GEMINI_API_KEYS: Key ring, comma/semicolon/space separated
  - GEMINI_API_KEY: Single-key fallback (API_KEY also accepted)
  - GEMINI_MODEL: Model name (default: gemini-2.5-flash-image-preview)
  - GEMINI_ENDPOINT: API base URL override
  - GEMINI_TIMEOUT_MS: Per-call timeout (default: 30000)
  - GEMINI_MAX_RETRIES: Per-key retry budget (default: 3)
  - GEMINI_TEMPERATURE: Sampling temperature (default: 0.0)
  - GEMINI_REQUESTS_PER_MINUTE: Client-side pacing per key (default: 10)

Azure OpenAI Analysis (AzureConfig):
  - AZURE_OPENAI_ENDPOINT: Resource endpoint
  - AZURE_OPENAI_KEY: API key
  - AZURE_OPENAI_DEPLOYMENT_ID: Deployment name (default: gpt-4o)
  - AZURE_OPENAI_API_VERSION: API version (default: 2024-02-15-preview)
  - AZURE_OPENAI_TIMEOUT_MS: Per-call timeout (default: 15000)
  - AZURE_OPENAI_TEMPERATURE: Sampling temperature (default: 0.1)
  - AZURE_OPENAI_MAX_TOKENS: Completion cap (default: 500)

Catalog and Recommendations:
  - CATALOG_PATH: Catalog JSON path (default: data/catalog.json)
  - RECOMMEND_RERANK: Enable LLM re-ranking (default: false)
  - RECOMMEND_RERANK_TOP_K: Ids per category from re-ranker (default: 3)
  - RECOMMEND_SCORE_THRESHOLD: Minimum surfacing score (default: 0)
  - LLM_RERANK_MAX_TOKENS: Re-ranker completion cap (default: 400)
  - LLM_RERANK_TEMPERATURE: Re-ranker temperature (default: 0.2)

Image Proxy (ProxyConfig):
  - PROXY_TIMEOUT_MS: Upstream fetch timeout (default: 15000)
  - PROXY_MAX_BYTES: Max upstream body size (default: 20MB)

Cache (CacheConfig):
  - CACHE_ENABLED: Enable introspection response cache (default: true)
  - CACHE_TTL: Entry lifetime (default: 60s)
  - CACHE_CLEANUP_INTERVAL: Expired-entry sweep interval (default: 5m)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file:line caller info (default: false)

# Validation

Load() validates the assembled configuration and fails startup on:

  - Out-of-range values (port, timeouts, retries, token caps)
  - Placeholder credentials (REPLACE_ME, CHANGEME, ...) copied from
    an .env.example
  - Wildcard CORS origins in production

Missing vendor credentials are not startup errors: the corresponding
service reports itself unconfigured and its endpoints respond 503,
so the catalog-only recommendation path keeps working.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal("Failed to load config:", err)
	}
	server := &http.Server{
	    Addr:         cfg.Server.Addr(),
	    ReadTimeout:  cfg.Server.Timeout,
	    WriteTimeout: cfg.Server.Timeout,
	}

Config is immutable after Load() and safe for concurrent reads.
*/
package config
