// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

//go:build integration

// Package testinfra starts Docker containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so the suite still passes on machines
// without a Docker daemon.
//
// # Redis
//
//	redisC, err := testinfra.NewRedisContainer(ctx)
//	store, err := cache.NewRedisStore(cache.RedisOptions{Addr: redisC.Addr})
//
// # MongoDB
//
// NewMongoContainer starts a single-node replica set, which the Mongo store
// needs for multi-document transactions:
//
//	mongoC, err := testinfra.NewMongoContainer(ctx)
//	store, err := mongostore.New(ctx, config.MongoConfig{URI: mongoC.URI, Database: "test"})
package testinfra
