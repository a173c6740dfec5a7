// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import "github.com/tomtom215/reelrank/internal/recommend"

// CredentialsRequest is the body of signup and login. bcrypt ignores bytes
// past 72, so longer passwords are rejected instead of silently truncated.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,max=72"`
}

// FeedbackRequest is the body of POST /api/v1/recommend. Either list may be
// empty and holds at most 500 ids; repeated ids are collapsed by the service.
type FeedbackRequest struct {
	LikedMovieIDs    []int64 `json:"likedMovieIds" validate:"max=500,dive,gt=0"`
	DislikedMovieIDs []int64 `json:"dislikedMovieIds" validate:"max=500,dive,gt=0"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// StatusResponse is returned by GET /api/v1/auth/status.
type StatusResponse struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	UserID     int64  `json:"user_id,omitempty"`
	Username   string `json:"username,omitempty"`
}

// InitialResponse echoes the user id next to the recommendation result.
type InitialResponse struct {
	UserID int64 `json:"userId"`
	*recommend.Result
}
