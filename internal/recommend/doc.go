// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend implements the hybrid movie recommendation engine.
//
// # Architecture
//
// Recommendations combine two signals over a fixed item universe:
//
//   - Collaborative: a biased SVD prediction for every (user, item) pair
//   - Content: the mean similarity row of the items the user liked
//
// The two are blended as alpha*cf + (1-alpha)*content and ranked. Users with
// no usable history get the popularity ranking instead, topped up with a
// seeded random sample when popularity runs out.
//
// # Components
//
//   - Scorer: produces index-aligned score vectors from an artifacts.Store
//   - Selector: chooses between the cold, warm and history policies
//   - Service: ties the selector to an InteractionLog and enriches results
//     with metadata and poster URLs
//
// # Usage
//
//	store, err := artifacts.Load(ctx, "/models/manifest.yaml")
//	svc, err := recommend.NewService(store, db, posters, recommend.DefaultConfig(), logger)
//
//	res, err := svc.InitialRecommendations(ctx, userID)
//	res, err = svc.SubmitFeedback(ctx, userID, liked, disliked)
//
// # Thread Safety
//
// Service, Selector and Scorer are safe for concurrent use. The artifact
// store is shared read-only; the only mutable engine state is the random
// source used for cold-start sampling, which is guarded by a mutex.
package recommend
