// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package mongostore implements the interaction log and the user store on
MongoDB, as an alternative to the embedded DuckDB backend.

Collections:

  - user_interactions: one document per (user, movie, rating), unique index
  - users: accounts with int64 ids and a unique username index
  - counters: monotonically increasing sequences for ids and insertion order

Feedback batches are written inside a multi-document transaction, so the
server must run as a replica set (a single-node set is enough):

	store, err := mongostore.New(ctx, config.MongoConfig{
		URI:      "mongodb://localhost:27017/?directConnection=true",
		Database: "reelrank",
	})
	if err != nil {
		return err
	}
	defer store.Close(context.Background())
*/
package mongostore
