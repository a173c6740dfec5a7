// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"runtime"
)

// Config contains runtime tuning for the engine. Blend parameters (alpha,
// top_n) come from the artifact manifest, not from here.
type Config struct {
	// Workers bounds the parallelism of collaborative scoring.
	// 1 scores sequentially. Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// Seed seeds the cold-start random fallback. Zero seeds from the clock.
	Seed int64 `json:"seed"`

	// HistorySeedSize is how many recent interactions seed the initial list.
	HistorySeedSize int `json:"history_seed_size"`

	// EnrichConcurrency bounds concurrent poster lookups per request.
	EnrichConcurrency int `json:"enrich_concurrency"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           runtime.NumCPU(),
		HistorySeedSize:   5,
		EnrichConcurrency: 4,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.HistorySeedSize < 1 {
		return fmt.Errorf("history_seed_size must be at least 1, got %d", c.HistorySeedSize)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich_concurrency must be at least 1, got %d", c.EnrichConcurrency)
	}
	return nil
}

func (c *Config) workers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
