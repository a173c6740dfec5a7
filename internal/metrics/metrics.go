// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto, so
// importing the package is enough to expose them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation lists produced, by selection policy",
		},
		[]string{"policy"}, // cold, warm, history
	)

	RecommendationsEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_empty_total",
			Help: "Total number of empty recommendation results, by reason",
		},
		[]string{"reason"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_scoring_duration_seconds",
			Help:    "Time spent computing score vectors",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"signal"}, // collaborative, content
	)

	// Interaction Log Metrics
	InteractionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_writes_total",
			Help: "Total number of interaction batch writes, by result",
		},
		[]string{"result"}, // success, failure
	)

	InteractionRowsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_rows_inserted_total",
			Help: "Total number of interaction rows inserted after deduplication",
		},
	)

	// Poster Lookup Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Total number of poster resolutions, by outcome",
		},
		[]string{"outcome"}, // cached, resolved, placeholder, error
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of TMDB image API calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache", "backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache", "backend"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries held by an in-process cache after the last sweep",
		},
		[]string{"cache", "backend"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_expired_evictions_total",
			Help: "Total number of expired entries removed by cache sweeps",
		},
		[]string{"cache", "backend"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Storage Metrics
	InteractionStoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_store_up",
			Help: "Whether the last interaction store ping succeeded (1) or failed (0)",
		},
	)

	// Artifact Metrics
	ArtifactItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_item_universe_size",
			Help: "Number of items in the loaded item universe",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordInteractionWrite records the outcome of one interaction batch.
func RecordInteractionWrite(inserted int, err error) {
	if err != nil {
		InteractionWrites.WithLabelValues("failure").Inc()
		return
	}
	InteractionWrites.WithLabelValues("success").Inc()
	InteractionRowsInserted.Add(float64(inserted))
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cache, backend string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache, backend).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache, backend).Inc()
}
