// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// InitialRecommendations handles GET /api/v1/recommend/initial.
// Returns history-seeded recommendations, or popular movies for a new user.
func (h *Handler) InitialRecommendations(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, r, "unauthorized: missing token")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.recommender.InitialRecommendations(ctx, claims.UserID)
	if err != nil {
		h.recommendError(w, r, err)
		return
	}

	WriteSuccess(w, r, InitialResponse{UserID: claims.UserID, Result: result})
}

// SubmitFeedback handles POST /api/v1/recommend.
// Records likes and dislikes, then returns refreshed recommendations. An
// empty result is still 200, with reason and message set.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		rw.Unauthorized("unauthorized: missing token")
		return
	}

	var req FeedbackRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.recommender.SubmitFeedback(ctx, claims.UserID, req.LikedMovieIDs, req.DislikedMovieIDs)
	if err != nil {
		h.recommendError(w, r, err)
		return
	}

	rw.Success(result)
}

func (h *Handler) recommendError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	logger := logging.Ctx(r.Context())

	switch {
	case errors.Is(err, recommend.ErrInteractionWrite):
		logger.Error().Err(err).Msg("Error storing interactions")
		rw.Error(http.StatusInternalServerError, ErrCodeInteractionWrite, "Error storing interactions")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Recommendation timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeTimeout, "Recommendation timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		logger.Debug().Msg("Recommendation canceled by client")
	default:
		logger.Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("Failed to generate recommendations")
	}
}
