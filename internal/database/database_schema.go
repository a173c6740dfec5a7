// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"time"
)

// schemaTimeout bounds schema creation at startup.
const schemaTimeout = 30 * time.Second

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), schemaTimeout)
}

// schemaQueries returns the idempotent DDL run on every open.
func schemaQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS user_interactions_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,

		// Append-only feedback log. rating is 5.0 (like) or 1.0 (dislike);
		// a user may hold both for the same movie but never the same triple twice.
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id BIGINT PRIMARY KEY DEFAULT nextval('user_interactions_id_seq'),
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			rating DOUBLE NOT NULL CHECK (rating IN (1.0, 5.0)),
			interacted_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, movie_id, rating)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_user_interactions_user ON user_interactions(user_id, interacted_at)`,
	}
}
