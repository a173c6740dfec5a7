// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/mongostore"
	"github.com/tomtom215/reelrank/internal/recommend"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// storage bundles the views the rest of the server needs from one backend.
type storage struct {
	interactions recommend.InteractionLog
	users        models.UserStore
	pinger       pinger
	close        func()
}

// openStorage opens the backend selected by database.driver.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		store, err := mongostore.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		logging.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB storage initialized")
		return &storage{
			interactions: store,
			users:        store,
			pinger:       store,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := store.Close(closeCtx); err != nil {
					logging.Error().Err(err).Msg("Error closing MongoDB")
				}
			},
		}, nil

	case config.DriverDuckDB, "":
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("duckdb: %w", err)
		}
		logging.Info().Str("path", cfg.Database.Path).Msg("DuckDB storage initialized")
		return &storage{
			interactions: db,
			users:        db,
			pinger:       db,
			close: func() {
				if err := db.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing database")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
