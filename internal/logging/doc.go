// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package logging provides centralized zerolog-based structured logging for Vestiarium.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development. All components (API handlers, the Gemini
// and Azure clients, the catalog, and the recommendation pipeline) log
// through this package so one request can be traced end to end.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Global logger configuration via environment variables
//   - Context-aware logging with request/correlation ID propagation
//   - slog adapter for Suture v4 integration
//   - Credential-safe logging for upstream vendor API keys
//
// # Quick Start
//
//	import "github.com/tomtom215/vestiarium/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("model", model).Msg("Gemini client ready")
//	logging.Error().Err(err).Int("code", 502).Msg("Upstream call failed")
//
//	// Context-aware logging
//	logging.Ctx(ctx).Info().Int("candidates", n).Msg("Catalog scored")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Programmatic Configuration:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("category", category).
//	    Int("count", itemCount).
//	    Dur("elapsed", duration).
//	    Msg("Recommendations built")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Built %d items for %s in %v", itemCount, category, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	// Create a logger for the catalog component
//	catalogLogger := logging.With().Str("component", "catalog").Logger()
//	catalogLogger.Info().Msg("Loading catalog")
//	catalogLogger.Error().Err(err).Msg("Catalog reload failed")
//
// # Context-Aware Logging
//
// Propagate request context through logging:
//
//	// Request and correlation IDs are added automatically
//	logger := logging.Ctx(ctx)
//	logger.Info().Msg("Processing try-on request")
//
// # slog Adapter
//
// The package provides an slog adapter for libraries that require slog.Logger:
//
//	slogLogger := logging.NewSlogLogger()
//	// Use slogLogger with Suture or other slog-compatible libraries
//
// # Credential Safety
//
// Vendor API keys must never appear in logs. Use the sanitizers before
// logging anything that may contain a key:
//
//	logging.Warn().
//	    Str("event", "key_invalid").
//	    Str("key", logging.SanitizeToken(apiKey)).
//	    Str("endpoint", logging.SanitizeEndpoint(url)).
//	    Msg("Gemini rejected API key")
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","time":"2025-01-03T10:30:00Z","message":"Server starting","port":3000}
//
// Console Format (Development):
//
//	10:30:00 INF Server starting port=3000
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/middleware: Request ID middleware for correlation
package logging
