// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vestiarium/config.yaml",
	"/etc/vestiarium/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
// Vendor credentials (Gemini keys, Azure endpoint/key) default to empty and
// leave their service unconfigured rather than failing startup.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
			TrustedProxies:     []string{},
			RateLimitGenerate:  10,
			RateLimitRecommend: 30,
			RateLimitStatus:    120,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
		},
		Limits: LimitsConfig{
			MaxUploadMB: 10,
			MinImageDim: 10,
			// MaxBodyBytes 0 = derived from MaxUploadMB, see BodyLimit()
		},
		Gemini: GeminiConfig{
			Model:             "gemini-2.5-flash-image-preview",
			Endpoint:          "https://generativelanguage.googleapis.com",
			TimeoutMS:         30000,
			MaxRetries:        3,
			Temperature:       0.0,
			RequestsPerMinute: 10,
		},
		Azure: AzureConfig{
			Deployment:  "gpt-4o",
			APIVersion:  "2024-02-15-preview",
			TimeoutMS:   15000,
			Temperature: 0.1,
			MaxTokens:   500,
		},
		Catalog: CatalogConfig{
			Path: "data/catalog.json",
		},
		Recommend: RecommendConfig{
			Rerank:            false,
			RerankTopK:        3,
			RerankMaxTokens:   400,
			RerankTemperature: 0.2,
			ScoreThreshold:    0.0,
		},
		Proxy: ProxyConfig{
			TimeoutMS: 15000,
			MaxBytes:  20 * 1024 * 1024,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             60 * time.Second,
			CleanupInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using the Koanf library with a clean
// layered approach:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
//   - Compatibility with the flat environment variable names the Node
//     and Python deployments of this service used
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// GEMINI_API_KEYS -> gemini.api_keys
	// AZURE_OPENAI_DEPLOYMENT_ID -> azure.deployment
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
	"gemini.api_keys",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
// GEMINI_API_KEYS additionally accepts semicolons and spaces as separators; that
// normalization happens in GeminiConfig.KeyRing so YAML lists get it too.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// It handles the mapping from the flat environment variable names used by the
// earlier deployments of this service to the nested configuration structure.
//
// Examples:
//   - PORT -> server.port
//   - GEMINI_API_KEYS -> gemini.api_keys
//   - AZURE_OPENAI_ENDPOINT -> azure.endpoint
//   - FRONTEND_URL -> security.cors_origins
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"port":         "server.port",
		"host":         "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",
		"node_env":     "server.environment",

		// Security
		"frontend_url":         "security.cors_origins",
		"cors_origins":         "security.cors_origins",
		"trusted_proxies":      "security.trusted_proxies",
		"rate_limit_generate":  "security.rate_limit_generate",
		"rate_limit_recommend": "security.rate_limit_recommend",
		"rate_limit_status":    "security.rate_limit_status",
		"rate_limit_window":    "security.rate_limit_window",
		"disable_rate_limit":   "security.rate_limit_disabled",

		// Upload limits
		"max_upload_size_mb":  "limits.max_upload_mb",
		"min_image_dimension": "limits.min_image_dim",
		"max_body_bytes":      "limits.max_body_bytes",

		// Gemini generation
		"gemini_api_key":             "gemini.api_key",
		"api_key":                    "gemini.api_key",
		"gemini_api_keys":            "gemini.api_keys",
		"gemini_model":               "gemini.model",
		"gemini_endpoint":            "gemini.endpoint",
		"gemini_timeout_ms":          "gemini.timeout_ms",
		"gemini_max_retries":         "gemini.max_retries",
		"gemini_temperature":         "gemini.temperature",
		"gemini_requests_per_minute": "gemini.requests_per_minute",

		// Azure OpenAI analysis
		"azure_openai_endpoint":      "azure.endpoint",
		"azure_openai_key":           "azure.api_key",
		"azure_openai_deployment_id": "azure.deployment",
		"azure_openai_api_version":   "azure.api_version",
		"azure_openai_timeout_ms":    "azure.timeout_ms",
		"azure_openai_temperature":   "azure.temperature",
		"azure_openai_max_tokens":    "azure.max_tokens",

		// Catalog and recommendations
		"catalog_path":              "catalog.path",
		"recommend_rerank":          "recommend.rerank",
		"recommend_rerank_top_k":    "recommend.rerank_top_k",
		"llm_rerank_max_tokens":     "recommend.rerank_max_tokens",
		"llm_rerank_temperature":    "recommend.rerank_temperature",
		"recommend_score_threshold": "recommend.score_threshold",

		// Image proxy
		"proxy_timeout_ms": "proxy.timeout_ms",
		"proxy_max_bytes":  "proxy.max_bytes",

		// Cache
		"cache_enabled":          "cache.enabled",
		"cache_ttl":              "cache.ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// This is useful for:
//   - Hot-reload scenarios (with proper mutex protection)
//   - Custom configuration sources
//   - Testing with mock configurations
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	var cfgMu sync.RWMutex
//	var cfg *Config
//
//	err := WatchConfigFile(configPath, func() {
//	    cfgMu.Lock()
//	    defer cfgMu.Unlock()
//	    newCfg, err := LoadWithKoanf()
//	    if err != nil {
//	        log.Printf("Config reload failed: %v", err)
//	        return
//	    }
//	    cfg = newCfg
//	    log.Println("Configuration reloaded successfully")
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
