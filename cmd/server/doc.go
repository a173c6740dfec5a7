// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package main is the entry point for the ReelRank server.
//
// ReelRank serves hybrid movie recommendations: a collaborative model
// (truncated SVD) blended with content similarity, refreshed as users like
// and dislike titles.
//
// # Startup
//
// The server initializes components in this order and exits on any failure
// before the HTTP server starts:
//
//  1. Configuration: koanf defaults, then config.yaml, then environment
//  2. Artifacts: manifest, model, similarity matrix, metadata, popularity
//  3. Storage: DuckDB (default) or MongoDB for users and interactions
//  4. Poster lookup: TMDB client with memory, Redis or Badger cache
//  5. Recommendation and account services
//  6. Supervisor tree: store monitor and HTTP server
//
// # Example Usage
//
//	export JWT_SECRET=$(openssl rand -base64 48)
//	export ARTIFACT_MANIFEST=/data/artifacts/manifest.yaml
//	export TMDB_API_KEY=your-tmdb-key
//	./reelrank
//
// With MongoDB and a shared Redis poster cache:
//
//	export DATABASE_DRIVER=mongo
//	export MONGO_URI=mongodb://mongo:27017/?replicaSet=rs0
//	export POSTER_CACHE_BACKEND=redis
//	export REDIS_ADDR=redis:6379
//	./reelrank
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections, in-flight requests get server.shutdown_timeout to
// finish, then the stores are closed.
package main
