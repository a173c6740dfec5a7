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

// Pinger checks that a store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreMonitorService pings the interaction store on an interval, exports
// the result as interaction_store_up and logs availability transitions.
type StoreMonitorService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string

	healthy bool
}

// NewStoreMonitorService creates a monitor. A non-positive interval means 30s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStoreMonitorService(store Pinger, interval time.Duration, logger zerolog.Logger) *StoreMonitorService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("service", "store-monitor").Logger(),
		name:     "store-monitor",
		healthy:  true,
	}
}

// Serve implements suture.Service.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check runs one ping and reports whether the store answered.
func (s *StoreMonitorService) check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	if ctx.Err() != nil {
		// Shutting down; a canceled ping says nothing about the store.
		return s.healthy
	}

	switch {
	case err != nil && s.healthy:
		s.logger.Warn().Err(err).Msg("Interaction store unreachable")
	case err == nil && !s.healthy:
		s.logger.Info().Msg("Interaction store reachable again")
	}

	s.healthy = err == nil
	if s.healthy {
		metrics.InteractionStoreUp.Set(1)
	} else {
		metrics.InteractionStoreUp.Set(0)
	}
	return s.healthy
}

// String identifies the service in supervisor logs.
func (s *StoreMonitorService) String() string {
	return s.name
}
