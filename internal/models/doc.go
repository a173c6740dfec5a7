// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package models defines the data structures shared by the storage backends
and the HTTP layer.

Recommendation domain types (interactions, feedback, results) live in
package recommend next to the engine that consumes them. This package holds
account data, which both the DuckDB and MongoDB stores persist and the auth
handlers read:

  - User: a registered account with a bcrypt password hash
  - UserStore: the persistence contract implemented by each backend
  - ErrUserExists, ErrUserNotFound: sentinel errors, compared with errors.Is
*/
package models
