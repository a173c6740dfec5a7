// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/config"
)

// Store is a best-effort string cache. Backend failures are logged and
// reported as misses; callers never see an error from Get or Set.
//
// Usage:
//
//	var s Store = NewMemoryStore(10000, 24*time.Hour)
//
//	s.Set(ctx, "603", "https://image.tmdb.org/t/p/w500/abc.jpg")
//	if url, ok := s.Get(ctx, "603"); ok {
//	    // Use cached value
//	}
type Store interface {
	// Get returns the value and true if present and not expired.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value with the store's default TTL.
	Set(ctx context.Context, key, value string)

	// Backend names the implementation for metrics labels.
	Backend() string

	// Close releases backend resources.
	Close() error
}

// New creates the Store selected by cfg.Backend.
//
// Example:
//
//	// In-process LRU (default)
//	store, err := cache.New(config.PosterCacheConfig{Backend: "memory", Capacity: 10000, TTL: 24 * time.Hour})
//
//	// Shared across replicas
//	store, err := cache.New(config.PosterCacheConfig{Backend: "redis", RedisAddr: "redis:6379"})
func New(cfg config.PosterCacheConfig) (Store, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	switch cfg.Backend {
	case config.CacheMemory, "":
		return NewMemoryStore(cfg.Capacity, ttl), nil
	case config.CacheRedis:
		return NewRedisStore(RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
			TTL:       ttl,
		})
	case config.CacheBadger:
		return OpenBadgerStore(cfg.BadgerPath, cfg.KeyPrefix, ttl)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
