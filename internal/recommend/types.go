// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"time"
)

// Interaction ratings. Only these two values are ever stored.
const (
	RatingLike    = 5.0
	RatingDislike = 1.0
)

// ErrInteractionWrite indicates a feedback batch could not be persisted.
// The batch was rolled back as a whole and may be retried.
var ErrInteractionWrite = errors.New("error storing interactions")

// Interaction is one persisted feedback event.
type Interaction struct {
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"movie_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Liked reports whether the interaction is a like.
func (i Interaction) Liked() bool { return i.Rating == RatingLike }

// Feedback is a single (item, rating) pair submitted by a user.
type Feedback struct {
	ItemID int64
	Rating float64
}

// InteractionLog is the append-only store of user feedback.
type InteractionLog interface {
	// AppendInteractions persists every feedback entry that does not already
	// exist as an identical (user, item, rating) row. The batch is atomic:
	// on error nothing is written. Returns the number of rows inserted.
	AppendInteractions(ctx context.Context, userID int64, feedback []Feedback) (int, error)

	// InteractionsByUser returns the user's full history, newest first.
	InteractionsByUser(ctx context.Context, userID int64) ([]Interaction, error)
}

// ImageResolver resolves an item's poster. Implementations never fail:
// any problem yields a placeholder URL.
type ImageResolver interface {
	ResolveImage(ctx context.Context, externalID *int64) string
}

// Policy identifies the selection strategy that produced a result.
type Policy string

const (
	PolicyCold    Policy = "cold"
	PolicyWarm    Policy = "warm"
	PolicyHistory Policy = "history"
)

// Reason explains an empty result.
type Reason string

const (
	ReasonNoCandidates  Reason = "no_candidates_available"
	ReasonNoUnseenItems Reason = "no_unseen_items"
)

// User-facing messages for empty results.
const (
	MessageNoCandidates  = "No new movies available to recommend."
	MessageNoUnseenItems = "No new movies left to recommend."
)

// RecommendedItem is an enriched recommendation.
type RecommendedItem struct {
	ItemID    int64    `json:"movieId"`
	Title     string   `json:"title,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	PosterURL string   `json:"poster_url"`
}

// Result is the outcome of a recommendation request. A non-empty Reason
// marks an empty result that is not an error.
type Result struct {
	Items   []RecommendedItem `json:"recommendations"`
	Policy  Policy            `json:"policy"`
	Reason  Reason            `json:"reason,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Empty reports whether the result carries no items.
func (r *Result) Empty() bool { return len(r.Items) == 0 }
