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
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
)

const (
	interactionsCollection = "user_interactions"
	usersCollection        = "users"
	countersCollection     = "counters"

	defaultDatabase       = "reelrank"
	defaultConnectTimeout = 10 * time.Second
)

// Store is a MongoDB backed interaction log and user store.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	interactions *mongo.Collection
	users        *mongo.Collection
	counters     *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// exist.
//
//nolint:gocritic // MongoConfig is small and read once at startup
func New(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo URI is required")
	}
	database := cfg.Database
	if database == "" {
		database = defaultDatabase
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:       client,
		db:           db,
		interactions: db.Collection(interactionsCollection),
		users:        db.Collection(usersCollection),
		counters:     db.Collection(countersCollection),
	}

	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // already failing
		return nil, err
	}

	logging.Info().
		Str("database", database).
		Msg("MongoDB store initialized")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.interactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "movie_id", Value: 1}, {Key: "rating", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_movie_rating"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "interacted_at", Value: -1}, {Key: "seq", Value: -1}},
			Options: options.Index().SetName("idx_user_recent"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create interaction indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// nextSequence reserves n consecutive values from the named counter and
// returns the first one.
func (s *Store) nextSequence(ctx context.Context, name string, n int64) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": n}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance %s counter: %w", name, err)
	}
	return counter.Value - n + 1, nil
}

// Ping verifies the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
