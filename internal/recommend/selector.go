// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
)

// Selector picks candidate item ids for a user under one of three policies.
// It is safe for concurrent use.
type Selector struct {
	store    *artifacts.Store
	scorer   *Scorer
	seedSize int
	logger   zerolog.Logger

	// Random source for the cold-start fallback (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSelector creates a Selector.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSelector(store *artifacts.Store, scorer *Scorer, cfg Config, logger zerolog.Logger) *Selector {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seedSize := cfg.HistorySeedSize
	if seedSize < 1 {
		seedSize = 5
	}

	return &Selector{
		store:    store,
		scorer:   scorer,
		seedSize: seedSize,
		logger:   logger.With().Str("component", "selector").Logger(),
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
	}
}

// Exclusions returns every item the user has interacted with, whatever the rating.
func Exclusions(history []Interaction) map[int64]struct{} {
	excluded := make(map[int64]struct{}, len(history))
	for _, in := range history {
		excluded[in.ItemID] = struct{}{}
	}
	return excluded
}

// LikedItems returns the distinct liked item ids in history order.
func LikedItems(history []Interaction) []int64 {
	seen := make(map[int64]struct{})
	var liked []int64
	for _, in := range history {
		if !in.Liked() {
			continue
		}
		if _, dup := seen[in.ItemID]; dup {
			continue
		}
		seen[in.ItemID] = struct{}{}
		liked = append(liked, in.ItemID)
	}
	return liked
}

// HistorySeeds returns up to size of the most recent likes, padded with the
// most recent dislikes when there are fewer than size likes. history must be
// ordered newest first.
func HistorySeeds(history []Interaction, size int) []int64 {
	var likes, dislikes []int64
	for _, in := range history {
		switch in.Rating {
		case RatingLike:
			likes = append(likes, in.ItemID)
		case RatingDislike:
			dislikes = append(dislikes, in.ItemID)
		}
	}

	seeds := likes[:min(len(likes), size)]
	if pad := size - len(seeds); pad > 0 {
		seeds = append(seeds, dislikes[:min(len(dislikes), pad)]...)
	}
	return seeds
}

// Cold returns the popularity ranking minus excluded items, truncated to TopN.
// When popularity runs out the rest is a uniform random sample, without
// replacement, of universe items that are neither excluded nor already
// chosen. The result size is min(TopN, unseen items); empty means nothing is
// left to recommend.
func (s *Selector) Cold(excluded map[int64]struct{}) []int64 {
	topN := s.store.TopN()
	chosen := make(map[int64]struct{}, topN)
	out := make([]int64, 0, topN)

	for _, id := range s.store.Popularity() {
		if len(out) == topN {
			return out
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		if _, dup := chosen[id]; dup {
			continue
		}
		chosen[id] = struct{}{}
		out = append(out, id)
	}

	need := topN - len(out)
	if need == 0 {
		return out
	}

	var pool []int64
	for _, id := range s.store.ItemIDs() {
		if _, skip := excluded[id]; skip {
			continue
		}
		if _, dup := chosen[id]; dup {
			continue
		}
		pool = append(pool, id)
	}
	if len(pool) == 0 {
		return out
	}

	sampled := s.sample(pool, min(need, len(pool)))
	s.logger.Debug().
		Int("popular", len(out)).
		Int("sampled", len(sampled)).
		Msg("popularity exhausted, padding with random sample")

	return append(out, sampled...)
}

// sample draws k distinct entries from pool via a partial Fisher-Yates
// shuffle. pool is reordered in place.
func (s *Selector) sample(pool []int64, k int) []int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Warm ranks unseen items by blended score and returns the top TopN.
// seeds are the content inputs; ties keep universe order.
func (s *Selector) Warm(ctx context.Context, userID int64, seeds []int64, excluded map[int64]struct{}) ([]int64, error) {
	scores, err := s.scorer.HybridScores(ctx, strconv.FormatInt(userID, 10), seeds)
	if err != nil {
		return nil, err
	}

	ids := s.store.ItemIDs()
	candidates := make([]int, 0, len(ids))
	for i, id := range ids {
		if _, skip := excluded[id]; skip {
			continue
		}
		candidates = append(candidates, i)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	n := min(s.store.TopN(), len(candidates))
	out := make([]int64, n)
	for k := 0; k < n; k++ {
		out[k] = ids[candidates[k]]
	}
	return out, nil
}

// History runs the warm ranking seeded from the user's most recent
// interactions. It returns nil when there is nothing to seed with.
func (s *Selector) History(ctx context.Context, userID int64, history []Interaction) ([]int64, error) {
	seeds := HistorySeeds(history, s.seedSize)
	if len(seeds) == 0 {
		return nil, nil
	}
	return s.Warm(ctx, userID, seeds, Exclusions(history))
}
