// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
)

// Service is the recommendation entry point used by the HTTP layer.
// It is safe for concurrent use.
type Service struct {
	store    *artifacts.Store
	log      InteractionLog
	images   ImageResolver
	selector *Selector
	config   Config
	logger   zerolog.Logger
}

// NewService wires a Service from its collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store *artifacts.Store, log InteractionLog, images ImageResolver, cfg Config, logger zerolog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("artifact store is required")
	}
	if log == nil {
		return nil, errors.New("interaction log is required")
	}
	if images == nil {
		return nil, errors.New("image resolver is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	scorer := NewScorer(store, cfg.workers())
	return &Service{
		store:    store,
		log:      log,
		images:   images,
		selector: NewSelector(store, scorer, cfg, logger),
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// InitialRecommendations builds the first list shown to a user. Users with
// history are ranked from their most recent interactions; users without (or
// whose history leaves nothing to rank) get the popularity list.
func (s *Service) InitialRecommendations(ctx context.Context, userID int64) (*Result, error) {
	start := time.Now()
	logger := s.requestLogger(ctx, userID)

	history, err := s.log.InteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interaction history: %w", err)
	}

	if len(history) > 0 {
		ids, err := s.selector.History(ctx, userID, history)
		if err != nil {
			return nil, fmt.Errorf("rank from history: %w", err)
		}
		if len(ids) > 0 {
			res := s.result(ctx, PolicyHistory, ids)
			logger.Debug().
				Int("history", len(history)).
				Int("returned", len(ids)).
				Dur("duration", time.Since(start)).
				Msg("initial recommendations from history")
			return res, nil
		}
		logger.Debug().Int("history", len(history)).Msg("history produced no candidates, using popularity")
	}

	res := s.cold(ctx, Exclusions(history))
	logger.Debug().
		Int("returned", len(res.Items)).
		Dur("duration", time.Since(start)).
		Msg("initial recommendations from popularity")
	return res, nil
}

// SubmitFeedback records liked and disliked items, then recomputes the
// list from every like in the user's history. Users with no likes at all get
// the popularity list. A write failure leaves the log unchanged and returns
// an error wrapping ErrInteractionWrite.
func (s *Service) SubmitFeedback(ctx context.Context, userID int64, liked, disliked []int64) (*Result, error) {
	start := time.Now()
	logger := s.requestLogger(ctx, userID)

	batch := feedbackBatch(liked, disliked)
	if len(batch) > 0 {
		inserted, err := s.log.AppendInteractions(ctx, userID, batch)
		metrics.RecordInteractionWrite(inserted, err)
		if err != nil {
			logger.Error().Err(err).Int("batch", len(batch)).Msg("interaction write rolled back")
			return nil, fmt.Errorf("%w: %w", ErrInteractionWrite, err)
		}
		logger.Debug().Int("batch", len(batch)).Int("inserted", inserted).Msg("feedback recorded")
	}

	history, err := s.log.InteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload interaction history: %w", err)
	}
	excluded := Exclusions(history)

	likes := LikedItems(history)
	if len(likes) == 0 {
		return s.cold(ctx, excluded), nil
	}

	ids, err := s.selector.Warm(ctx, userID, likes, excluded)
	if err != nil {
		return nil, fmt.Errorf("rank from likes: %w", err)
	}
	if len(ids) == 0 {
		return s.empty(PolicyWarm, ReasonNoUnseenItems, MessageNoUnseenItems), nil
	}

	res := s.result(ctx, PolicyWarm, ids)
	logger.Debug().
		Int("likes", len(likes)).
		Int("excluded", len(excluded)).
		Int("returned", len(ids)).
		Dur("duration", time.Since(start)).
		Msg("feedback recommendations complete")
	return res, nil
}

// feedbackBatch turns the submitted id lists into feedback entries, collapsing
// repeated (item, rating) pairs.
func feedbackBatch(liked, disliked []int64) []Feedback {
	type key struct {
		item   int64
		rating float64
	}
	seen := make(map[key]struct{}, len(liked)+len(disliked))
	batch := make([]Feedback, 0, len(liked)+len(disliked))

	add := func(ids []int64, rating float64) {
		for _, id := range ids {
			k := key{id, rating}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			batch = append(batch, Feedback{ItemID: id, Rating: rating})
		}
	}
	add(liked, RatingLike)
	add(disliked, RatingDislike)
	return batch
}

func (s *Service) cold(ctx context.Context, excluded map[int64]struct{}) *Result {
	ids := s.selector.Cold(excluded)
	if len(ids) == 0 {
		return s.empty(PolicyCold, ReasonNoCandidates, MessageNoCandidates)
	}
	return s.result(ctx, PolicyCold, ids)
}

func (s *Service) result(ctx context.Context, policy Policy, ids []int64) *Result {
	metrics.RecommendationsServed.WithLabelValues(string(policy)).Inc()
	return &Result{
		Items:  s.enrich(ctx, ids),
		Policy: policy,
	}
}

func (s *Service) empty(policy Policy, reason Reason, message string) *Result {
	metrics.RecommendationsEmpty.WithLabelValues(string(reason)).Inc()
	return &Result{
		Items:   []RecommendedItem{},
		Policy:  policy,
		Reason:  reason,
		Message: message,
	}
}

// enrich attaches metadata and poster URLs, preserving the order of ids.
// Items without metadata keep their id and get the resolver's placeholder.
func (s *Service) enrich(ctx context.Context, ids []int64) []RecommendedItem {
	items := make([]RecommendedItem, len(ids))

	var g errgroup.Group
	g.SetLimit(s.config.EnrichConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			item := RecommendedItem{ItemID: id}

			var externalID *int64
			if meta, ok := s.store.Metadata(id); ok {
				item.Title = meta.Title
				item.Genres = meta.Genres
				externalID = meta.TMDBID
			} else {
				s.logger.Debug().Int64("movie_id", id).Msg("no metadata for item")
			}

			item.PosterURL = s.images.ResolveImage(ctx, externalID)
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func (s *Service) requestLogger(ctx context.Context, userID int64) zerolog.Logger {
	return s.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int64("user_id", userID).
		Logger()
}
