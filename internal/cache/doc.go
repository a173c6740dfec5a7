// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package cache provides the poster URL cache behind the TMDB resolver.

Three backends implement Store:

  - MemoryStore: an in-process LRU with TTL (default)
  - RedisStore: shared between replicas via go-redis
  - BadgerStore: embedded and persistent across restarts

All backends are best-effort: failures are logged and surface as cache
misses, so a broken cache only costs an extra API call.

Usage:

	store, err := cache.New(cfg.PosterCache)
	if err != nil {
	    return err
	}
	defer store.Close()

The LRU implementation uses a doubly-linked list for ordering and a map for
lookups, giving O(1) Get, Add and eviction. Expired entries are removed
lazily on access, and in bulk by CleanupExpired, which the supervisor's
cache sweeper calls periodically for the memory backend.
*/
package cache
