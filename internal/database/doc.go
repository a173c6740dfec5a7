// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package database provides the embedded DuckDB storage backend.

It persists two tables:

  - users: accounts for login (unique username, bcrypt hash)
  - user_interactions: the append-only like/dislike log

DB implements recommend.InteractionLog and models.UserStore, so the
recommendation service and the auth handlers use it directly.

Feedback batches are written in a single transaction with a
check-then-insert per (user, movie, rating) triple, so resubmitting the same
feedback is a no-op and a failed batch leaves no partial rows behind. A
UNIQUE constraint on the triple backs the check up at the storage level.

Usage:

	db, err := database.New(&cfg.Database)
	if err != nil {
	    log.Fatal(err)
	}
	defer db.Close()

	n, err := db.AppendInteractions(ctx, userID, []recommend.Feedback{
	    {ItemID: 603, Rating: recommend.RatingLike},
	})
*/
package database
