// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/reelrank/internal/recommend"
)

type interactionDoc struct {
	UserID       int64     `bson:"user_id"`
	MovieID      int64     `bson:"movie_id"`
	Rating       float64   `bson:"rating"`
	InteractedAt time.Time `bson:"interacted_at"`
	Seq          int64     `bson:"seq"`
}

// AppendInteractions inserts every feedback entry the user has not already
// recorded with the same rating, inside a single transaction.
func (s *Store) AppendInteractions(ctx context.Context, userID int64, feedback []recommend.Feedback) (int, error) {
	if len(feedback) == 0 {
		return 0, nil
	}

	session, err := s.client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.Background())

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.appendInTransaction(sc, userID, feedback)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store interactions: %w", err)
	}

	inserted, ok := result.(int)
	if !ok {
		return 0, errors.New("unexpected transaction result")
	}
	return inserted, nil
}

// appendInTransaction may run more than once when the driver retries a
// transient transaction error, so it must not keep state between calls.
func (s *Store) appendInTransaction(ctx context.Context, userID int64, feedback []recommend.Feedback) (int, error) {
	var pending []interactionDoc
	for _, f := range feedback {
		count, err := s.interactions.CountDocuments(ctx, bson.M{
			"user_id":  userID,
			"movie_id": f.ItemID,
			"rating":   f.Rating,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to check interaction for movie %d: %w", f.ItemID, err)
		}
		if count > 0 {
			continue
		}
		pending = append(pending, interactionDoc{
			UserID:  userID,
			MovieID: f.ItemID,
			Rating:  f.Rating,
		})
	}
	if len(pending) == 0 {
		return 0, nil
	}

	seq, err := s.nextSequence(ctx, interactionsCollection, int64(len(pending)))
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, len(pending))
	for i := range pending {
		pending[i].InteractedAt = now
		pending[i].Seq = seq + int64(i)
		docs[i] = pending[i]
	}

	if _, err := s.interactions.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return 0, fmt.Errorf("failed to insert interactions: %w", err)
	}
	return len(pending), nil
}

// InteractionsByUser returns the user's interactions, newest first. Documents
// from one batch share a timestamp and are ordered by sequence, latest first.
func (s *Store) InteractionsByUser(ctx context.Context, userID int64) ([]recommend.Interaction, error) {
	cursor, err := s.interactions.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "interacted_at", Value: -1}, {Key: "seq", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}

	var docs []interactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode interactions: %w", err)
	}

	out := make([]recommend.Interaction, len(docs))
	for i, d := range docs {
		out[i] = recommend.Interaction{
			UserID:    d.UserID,
			ItemID:    d.MovieID,
			Rating:    d.Rating,
			Timestamp: d.InteractedAt,
		}
	}
	return out, nil
}
