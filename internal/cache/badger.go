// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/reelrank/internal/logging"
)

// BadgerStore is a Store persisted in an embedded BadgerDB, so cached
// posters survive restarts without an external service.
type BadgerStore struct {
	db     *badger.DB
	prefix string
	ttl    time.Duration
	owned  bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path, prefix string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for poster cache: %w", err)
	}

	s := NewBadgerStore(db, prefix, ttl)
	s.owned = true
	return s, nil
}

// NewBadgerStore wraps an already open BadgerDB. Close does not close db.
func NewBadgerStore(db *badger.DB, prefix string, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, prefix: prefix, ttl: ttl}
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, bool) {
	var value string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(s.prefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Badger cache get failed")
		return "", false
	}
	return value, true
}

// Set implements Store.
func (s *BadgerStore) Set(ctx context.Context, key, value string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(s.prefix+key), []byte(value)).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Badger cache set failed")
	}
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return "badger" }

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
