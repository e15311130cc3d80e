// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package services provides Suture service wrappers for various application components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vestiarium/internal/metrics"
)

// ExpiringCache is the slice of the image cache the maintenance service needs.
// Satisfied by *cache.ImageCache.
type ExpiringCache interface {
	// CleanupExpired removes expired entries and returns how many were removed.
	CleanupExpired() int

	// Len returns the number of entries currently cached.
	Len() int
}

// MaintenanceConfig holds configuration for the maintenance service.
type MaintenanceConfig struct {
	// SweepInterval is how often expired cache entries are removed.
	// Entries also fall out lazily on access; the sweep bounds memory held
	// by URLs that are never requested again.
	SweepInterval time.Duration

	// UptimeInterval is how often the uptime gauge is refreshed.
	UptimeInterval time.Duration

	// StartedAt anchors the uptime gauge. Zero means service start.
	StartedAt time.Time
}

// MaintenanceService runs periodic housekeeping under Suture supervision:
// expired image cache sweeps and the process uptime gauge.
type MaintenanceService struct {
	cache  ExpiringCache
	config MaintenanceConfig
	logger zerolog.Logger
	name   string
}

// NewMaintenanceService creates a new maintenance service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(cache ExpiringCache, cfg MaintenanceConfig, logger zerolog.Logger) *MaintenanceService {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &MaintenanceService{
		cache:  cache,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
		name:   "maintenance",
	}
}

// Serve implements the suture.Service interface.
// It runs the sweep and uptime loops until the context is canceled.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	if s.config.SweepInterval <= 0 {
		s.config.SweepInterval = 5 * time.Minute
	}
	if s.config.UptimeInterval <= 0 {
		s.config.UptimeInterval = 15 * time.Second
	}

	s.logger.Info().
		Dur("sweep_interval", s.config.SweepInterval).
		Dur("uptime_interval", s.config.UptimeInterval).
		Msg("maintenance service starting")

	metrics.SetUptime(time.Since(s.config.StartedAt).Seconds())

	sweep := time.NewTicker(s.config.SweepInterval)
	defer sweep.Stop()

	uptime := time.NewTicker(s.config.UptimeInterval)
	defer uptime.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()

		case <-sweep.C:
			s.sweepCache()

		case <-uptime.C:
			metrics.SetUptime(time.Since(s.config.StartedAt).Seconds())
		}
	}
}

// sweepCache removes expired image cache entries.
// The cache records its own eviction and size metrics.
func (s *MaintenanceService) sweepCache() {
	if s.cache == nil {
		return
	}

	removed := s.cache.CleanupExpired()
	s.logger.Debug().
		Int("removed", removed).
		Int("remaining", s.cache.Len()).
		Msg("cache sweep complete")
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
