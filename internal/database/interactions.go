// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// AppendInteractions inserts each feedback entry the user has not already
// recorded with the same rating. The whole batch runs in one transaction;
// any failure rolls it back. Returns the number of rows inserted.
func (db *DB) AppendInteractions(ctx context.Context, userID int64, feedback []recommend.Feedback) (inserted int, err error) {
	if len(feedback) == 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			inserted = 0
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	now := time.Now().UTC()
	for _, f := range feedback {
		var exists int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM user_interactions WHERE user_id = ? AND movie_id = ? AND rating = ?`,
			userID, f.ItemID, f.Rating,
		).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check interaction for movie %d: %w", f.ItemID, err)
		}
		if exists > 0 {
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_interactions (user_id, movie_id, rating, interacted_at) VALUES (?, ?, ?, ?)`,
			userID, f.ItemID, f.Rating, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert interaction for movie %d: %w", f.ItemID, err)
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit interactions: %w", err)
	}
	return inserted, nil
}

// InteractionsByUser returns the user's interactions, newest first. Rows from
// the same batch share a timestamp and are ordered by insertion, latest first.
func (db *DB) InteractionsByUser(ctx context.Context, userID int64) ([]recommend.Interaction, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, movie_id, rating, interacted_at
		 FROM user_interactions
		 WHERE user_id = ?
		 ORDER BY interacted_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer closeQuietly(rows)

	var out []recommend.Interaction
	for rows.Next() {
		var in recommend.Interaction
		if err := rows.Scan(&in.UserID, &in.ItemID, &in.Rating, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return out, nil
}
