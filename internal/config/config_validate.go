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

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLimits(); err != nil {
		return err
	}

	if err := c.validateGemini(); err != nil {
		return err
	}

	if err := c.validateAzure(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateProxy(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validEnvironments defines the accepted ENVIRONMENT values
var validEnvironments = map[string]bool{
	"":            true,
	"development": true,
	"dev":         true,
	"production":  true,
	"prod":        true,
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[strings.ToLower(c.Server.Environment)] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS validates CORS configuration for security best practices.
// In production, wildcard CORS is rejected: the API serves try-on images
// generated from user uploads, and any origin being able to read them
// defeats the purpose of an origin allowlist.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("FRONTEND_URL=* (wildcard) is not allowed in production. " +
			"Set specific origins: FRONTEND_URL=https://yourdomain.com,https://app.yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("FRONTEND_URL entry %q must start with http:// or https://", origin)
		}
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS() && !c.IsProduction()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	limits := map[string]int{
		"RATE_LIMIT_GENERATE":  c.Security.RateLimitGenerate,
		"RATE_LIMIT_RECOMMEND": c.Security.RateLimitRecommend,
		"RATE_LIMIT_STATUS":    c.Security.RateLimitStatus,
	}
	for name, limit := range limits {
		if limit < minRateLimitRequests || limit > maxRateLimitRequests {
			return fmt.Errorf("%s must be between %d and %d", name, minRateLimitRequests, maxRateLimitRequests)
		}
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// Upload limit constants
const (
	minUploadMB = 1    // Minimum 1MB per image
	maxUploadMB = 100  // Maximum 100MB per image
	minImageDim = 1    // Smallest acceptable dimension floor
	maxImageDim = 1024 // Largest acceptable dimension floor
)

// validateLimits validates upload size and image dimension bounds
func (c *Config) validateLimits() error {
	if c.Limits.MaxUploadMB < minUploadMB || c.Limits.MaxUploadMB > maxUploadMB {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be between %d and %d", minUploadMB, maxUploadMB)
	}
	if c.Limits.MinImageDim < minImageDim || c.Limits.MinImageDim > maxImageDim {
		return fmt.Errorf("MIN_IMAGE_DIMENSION must be between %d and %d", minImageDim, maxImageDim)
	}
	if c.Limits.MaxBodyBytes < 0 {
		return fmt.Errorf("MAX_BODY_BYTES must not be negative")
	}
	return nil
}

// Vendor call constants
const (
	minVendorTimeoutMS = 1000   // Minimum 1 second per upstream call
	maxVendorTimeoutMS = 600000 // Maximum 10 minutes per upstream call
	minGeminiRetries   = 1      // At least one attempt per key
	maxGeminiRetries   = 10     // Retry budget cap per key
	minTemperature     = 0.0
	maxTemperature     = 2.0
	minAzureMaxTokens  = 1
	maxAzureMaxTokens  = 4096
)

// validateGemini validates the generation client configuration (only when
// at least one API key is configured - an unconfigured service degrades
// to 503 responses instead of failing startup)
func (c *Config) validateGemini() error {
	if err := c.validateGeminiKeys(); err != nil {
		return err
	}
	if !c.Gemini.Configured() {
		return nil
	}

	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	if err := validateHTTPURL(c.Gemini.Endpoint, "GEMINI_ENDPOINT"); err != nil {
		return err
	}
	if c.Gemini.TimeoutMS < minVendorTimeoutMS || c.Gemini.TimeoutMS > maxVendorTimeoutMS {
		return fmt.Errorf("GEMINI_TIMEOUT_MS must be between %d and %d", minVendorTimeoutMS, maxVendorTimeoutMS)
	}
	if c.Gemini.MaxRetries < minGeminiRetries || c.Gemini.MaxRetries > maxGeminiRetries {
		return fmt.Errorf("GEMINI_MAX_RETRIES must be between %d and %d", minGeminiRetries, maxGeminiRetries)
	}
	if c.Gemini.Temperature < minTemperature || c.Gemini.Temperature > maxTemperature {
		return fmt.Errorf("GEMINI_TEMPERATURE must be between %g and %g", minTemperature, maxTemperature)
	}
	if c.Gemini.RequestsPerMinute < 1 || c.Gemini.RequestsPerMinute > 1000 {
		return fmt.Errorf("GEMINI_REQUESTS_PER_MINUTE must be between 1 and 1000")
	}
	return nil
}

// validateGeminiKeys rejects placeholder values in the key ring so a copied
// .env.example never reaches a real deployment unnoticed
func (c *Config) validateGeminiKeys() error {
	for _, key := range c.Gemini.KeyRing() {
		if containsPlaceholder(key) {
			return fmt.Errorf("GEMINI_API_KEYS contains a placeholder value - set real API keys")
		}
	}
	return nil
}

// validateAzure validates the analysis client configuration (only when
// both endpoint and key are configured - recommendations fall back to
// keyword matching when analysis is unavailable)
func (c *Config) validateAzure() error {
	if c.Azure.APIKey != "" && containsPlaceholder(c.Azure.APIKey) {
		return fmt.Errorf("AZURE_OPENAI_KEY contains a placeholder value - set a real API key")
	}
	if !c.Azure.Configured() {
		return nil
	}

	if err := validateHTTPURL(c.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT"); err != nil {
		return err
	}
	if c.Azure.Deployment == "" {
		return fmt.Errorf("AZURE_OPENAI_DEPLOYMENT_ID must not be empty")
	}
	if c.Azure.APIVersion == "" {
		return fmt.Errorf("AZURE_OPENAI_API_VERSION must not be empty")
	}
	if c.Azure.TimeoutMS < minVendorTimeoutMS || c.Azure.TimeoutMS > maxVendorTimeoutMS {
		return fmt.Errorf("AZURE_OPENAI_TIMEOUT_MS must be between %d and %d", minVendorTimeoutMS, maxVendorTimeoutMS)
	}
	if c.Azure.Temperature < minTemperature || c.Azure.Temperature > maxTemperature {
		return fmt.Errorf("AZURE_OPENAI_TEMPERATURE must be between %g and %g", minTemperature, maxTemperature)
	}
	if c.Azure.MaxTokens < minAzureMaxTokens || c.Azure.MaxTokens > maxAzureMaxTokens {
		return fmt.Errorf("AZURE_OPENAI_MAX_TOKENS must be between %d and %d", minAzureMaxTokens, maxAzureMaxTokens)
	}
	return nil
}

// validateCatalog validates the product catalog configuration
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH must not be empty")
	}
	return nil
}

// Recommendation constants
const (
	minRerankTopK = 1
	maxRerankTopK = 20
)

// validateRecommend validates recommendation pipeline configuration
func (c *Config) validateRecommend() error {
	if c.Recommend.RerankTopK < minRerankTopK || c.Recommend.RerankTopK > maxRerankTopK {
		return fmt.Errorf("RECOMMEND_RERANK_TOP_K must be between %d and %d", minRerankTopK, maxRerankTopK)
	}
	if c.Recommend.RerankMaxTokens < minAzureMaxTokens || c.Recommend.RerankMaxTokens > maxAzureMaxTokens {
		return fmt.Errorf("LLM_RERANK_MAX_TOKENS must be between %d and %d", minAzureMaxTokens, maxAzureMaxTokens)
	}
	if c.Recommend.RerankTemperature < minTemperature || c.Recommend.RerankTemperature > maxTemperature {
		return fmt.Errorf("LLM_RERANK_TEMPERATURE must be between %g and %g", minTemperature, maxTemperature)
	}
	if c.Recommend.ScoreThreshold < 0 {
		return fmt.Errorf("RECOMMEND_SCORE_THRESHOLD must not be negative")
	}
	return nil
}

// validateProxy validates the image proxy configuration
func (c *Config) validateProxy() error {
	if c.Proxy.TimeoutMS < minVendorTimeoutMS || c.Proxy.TimeoutMS > maxVendorTimeoutMS {
		return fmt.Errorf("PROXY_TIMEOUT_MS must be between %d and %d", minVendorTimeoutMS, maxVendorTimeoutMS)
	}
	if c.Proxy.MaxBytes < 1 {
		return fmt.Errorf("PROXY_MAX_BYTES must be positive")
	}
	return nil
}

// validateCache validates the response cache configuration
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when CACHE_ENABLED=true")
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive when CACHE_ENABLED=true")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value. This prevents accidental deployment
// with insecure default credentials.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_PASSWORD",
	"YOUR_KEY",
	"PLACEHOLDER",
	"TODO",
	"FIXME",
	"XXX",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
// that indicate the user forgot to set a real value. This prevents accidental
// deployment with insecure default credentials.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	return containsAnyPattern(upperValue, placeholderPatterns)
}

// containsAnyPattern checks if a string contains any of the provided patterns
func containsAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}
