// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package artifacts loads the trained recommendation artifacts and exposes
// them as an immutable Store.
//
// A Store is built once at process start (Load) and shared read-only by every
// request. Nothing in it is mutated after construction, so no locking is
// needed. Slices returned by accessors alias internal storage and must not be
// modified by callers.
//
// # Contents
//
//   - Item universe: ordered item ids with a bijective id to index map
//   - Content similarity matrix: dense n x n, row-major
//   - Collaborative predictor: biased SVD (see SVDModel)
//   - Item metadata: title, genre tokens and TMDB id
//   - Popularity ranking: most to least popular
//   - Blend parameters: alpha and top_n
//
// Any missing or unreadable artifact is a startup failure.
package artifacts

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArtifact indicates a required artifact file does not exist.
	ErrMissingArtifact = errors.New("artifact missing")

	// ErrCorruptArtifact indicates an artifact exists but cannot be decoded or
	// violates a structural invariant.
	ErrCorruptArtifact = errors.New("artifact corrupt")
)

// Predictor estimates the affinity of a user for an item.
// Implementations must not fail for unknown users or items.
type Predictor interface {
	Predict(userKey string, itemID int64) float64
}

// ItemMetadata describes one catalog item for display.
type ItemMetadata struct {
	ItemID int64
	Title  string
	Genres []string

	// TMDBID is the external poster-lookup id, nil when unknown.
	TMDBID *int64
}

// Params carries everything needed to assemble a Store.
type Params struct {
	ItemIDs    []int64
	Similarity []float64 // row-major, len(ItemIDs)^2 entries
	Predictor  Predictor
	Metadata   []ItemMetadata
	Popularity []int64
	Alpha      float64
	TopN       int
}

// Store is the immutable set of trained artifacts.
type Store struct {
	itemIDs    []int64
	index      map[int64]int
	similarity []float64
	predictor  Predictor
	metadata   map[int64]ItemMetadata
	popularity []int64
	alpha      float64
	topN       int
}

// NewStore validates p and builds a Store. Validation errors wrap ErrCorruptArtifact.
//
//nolint:gocritic // hugeParam: Params is consumed once at startup
func NewStore(p Params) (*Store, error) {
	n := len(p.ItemIDs)
	if n == 0 {
		return nil, fmt.Errorf("%w: item universe is empty", ErrCorruptArtifact)
	}
	if len(p.Similarity) != n*n {
		return nil, fmt.Errorf("%w: similarity matrix has %d entries, want %d (%dx%d)",
			ErrCorruptArtifact, len(p.Similarity), n*n, n, n)
	}
	if p.Predictor == nil {
		return nil, fmt.Errorf("%w: collaborative predictor is nil", ErrCorruptArtifact)
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return nil, fmt.Errorf("%w: alpha %v outside [0,1]", ErrCorruptArtifact, p.Alpha)
	}
	if p.TopN < 1 {
		return nil, fmt.Errorf("%w: top_n must be at least 1, got %d", ErrCorruptArtifact, p.TopN)
	}

	index := make(map[int64]int, n)
	for i, id := range p.ItemIDs {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d in universe", ErrCorruptArtifact, id)
		}
		index[id] = i
	}

	// Popularity ids outside the universe can never be recommended.
	popularity := make([]int64, 0, len(p.Popularity))
	ranked := make(map[int64]struct{}, len(p.Popularity))
	for _, id := range p.Popularity {
		if _, known := index[id]; !known {
			continue
		}
		if _, dup := ranked[id]; dup {
			continue
		}
		ranked[id] = struct{}{}
		popularity = append(popularity, id)
	}

	metadata := make(map[int64]ItemMetadata, len(p.Metadata))
	for _, m := range p.Metadata {
		// First row wins for duplicated ids.
		if _, seen := metadata[m.ItemID]; !seen {
			metadata[m.ItemID] = m
		}
	}

	return &Store{
		itemIDs:    p.ItemIDs,
		index:      index,
		similarity: p.Similarity,
		predictor:  p.Predictor,
		metadata:   metadata,
		popularity: popularity,
		alpha:      p.Alpha,
		topN:       p.TopN,
	}, nil
}

// Len returns the size of the item universe.
func (s *Store) Len() int { return len(s.itemIDs) }

// ItemIDs returns the ordered item universe.
func (s *Store) ItemIDs() []int64 { return s.itemIDs }

// Index returns the universe position of itemID.
func (s *Store) Index(itemID int64) (int, bool) {
	i, ok := s.index[itemID]
	return i, ok
}

// SimilarityRow returns row i of the content similarity matrix.
func (s *Store) SimilarityRow(i int) []float64 {
	n := len(s.itemIDs)
	return s.similarity[i*n : (i+1)*n]
}

// Predictor returns the collaborative predictor.
func (s *Store) Predictor() Predictor { return s.predictor }

// Metadata returns display metadata for itemID.
func (s *Store) Metadata(itemID int64) (ItemMetadata, bool) {
	m, ok := s.metadata[itemID]
	return m, ok
}

// Popularity returns universe item ids ordered from most to least popular,
// without duplicates.
func (s *Store) Popularity() []int64 { return s.popularity }

// Alpha is the weight of the collaborative score in the blend.
func (s *Store) Alpha() float64 { return s.alpha }

// TopN is the size of a recommendation list.
func (s *Store) TopN() int { return s.topN }

// MetadataCount returns the number of items with metadata.
func (s *Store) MetadataCount() int { return len(s.metadata) }
