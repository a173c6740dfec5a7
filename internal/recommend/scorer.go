// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
)

// cancelCheckInterval is how many predictions a worker makes between
// context checks.
const cancelCheckInterval = 1024

// Scorer computes index-aligned score vectors over the item universe.
// Entry i of every vector belongs to store.ItemIDs()[i].
type Scorer struct {
	store   *artifacts.Store
	workers int
}

// NewScorer creates a Scorer. workers < 1 is treated as 1.
func NewScorer(store *artifacts.Store, workers int) *Scorer {
	if workers < 1 {
		workers = 1
	}
	return &Scorer{store: store, workers: workers}
}

// NormalizeUserKey converts a raw user id to the key the collaborative model
// was trained with. Integer ids use their canonical decimal form ("007" is
// "7"); anything else passes through unchanged.
func NormalizeUserKey(raw string) string {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return raw
}

// CollaborativeScores predicts userID's rating for every item in the universe.
// This is one predictor call per item on every request; there is no caching.
// The only possible error is the context's.
func (s *Scorer) CollaborativeScores(ctx context.Context, userID string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	key := NormalizeUserKey(userID)
	ids := s.store.ItemIDs()
	predictor := s.store.Predictor()
	scores := make([]float64, len(ids))

	workers := min(s.workers, len(ids))
	chunk := (len(ids) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(ids); lo += chunk {
		hi := min(lo+chunk, len(ids))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				scores[i] = predictor.Predict(key, ids[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.ScoringDuration.WithLabelValues("collaborative").Observe(time.Since(start).Seconds())
	return scores, nil
}

// ContentScores averages the similarity rows of the liked items.
// Ids outside the universe are skipped. With no valid ids the result is the
// zero vector.
func (s *Scorer) ContentScores(likedIDs []int64) []float64 {
	start := time.Now()
	n := s.store.Len()
	acc := make([]float64, n)

	valid := 0
	for _, id := range likedIDs {
		idx, ok := s.store.Index(id)
		if !ok {
			continue
		}
		row := s.store.SimilarityRow(idx)
		for j, v := range row {
			acc[j] += v
		}
		valid++
	}

	if valid > 1 {
		d := float64(valid)
		for j := range acc {
			acc[j] /= d
		}
	}

	metrics.ScoringDuration.WithLabelValues("content").Observe(time.Since(start).Seconds())
	return acc
}

// Blend combines the two signals as alpha*cf + (1-alpha)*content.
func (s *Scorer) Blend(cf, content []float64) []float64 {
	alpha := s.store.Alpha()
	out := make([]float64, len(cf))
	for i := range cf {
		out[i] = alpha*cf[i] + (1-alpha)*content[i]
	}
	return out
}

// HybridScores is Blend(CollaborativeScores(userID), ContentScores(seeds)).
func (s *Scorer) HybridScores(ctx context.Context, userID string, seeds []int64) ([]float64, error) {
	cf, err := s.CollaborativeScores(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Blend(cf, s.ContentScores(seeds)), nil
}
