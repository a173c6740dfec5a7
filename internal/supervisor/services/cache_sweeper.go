// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
)

// Sweeper is an in-process cache that can drop its expired entries in bulk.
type Sweeper interface {
	CleanupExpired() int
	Len() int
	Backend() string
}

// CacheSweepService periodically removes expired entries from an in-process
// cache so entries that are never read again do not hold memory until evicted.
type CacheSweepService struct {
	cache    Sweeper
	label    string
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheSweepService creates a sweeper for the named cache.
// A non-positive interval means 10 minutes.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheSweepService(cache Sweeper, label string, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheSweepService{
		cache:    cache,
		label:    label,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweeper").Str("cache", label).Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep runs one cleanup pass and returns the number of entries removed.
func (s *CacheSweepService) sweep() int {
	removed := s.cache.CleanupExpired()
	size := s.cache.Len()
	backend := s.cache.Backend()

	metrics.CacheEntries.WithLabelValues(s.label, backend).Set(float64(size))
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(s.label, backend).Add(float64(removed))
		s.logger.Debug().Int("removed", removed).Int("entries", size).Msg("Expired cache entries swept")
	}
	return removed
}

// String identifies the service in supervisor logs.
func (s *CacheSweepService) String() string {
	return "cache-sweeper"
}
