// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package services wraps ReelRank components as suture.Service values.
//
// Each wrapper translates a component's own lifecycle into suture's
// Serve(ctx) error contract:
//
//   - HTTPServerService: ListenAndServe plus graceful Shutdown
//   - StoreMonitorService: periodic interaction store pings
//
// Wrappers return ctx.Err() on cancellation and a wrapped error on failure,
// which suture treats as a crash and restarts with backoff.
package services
