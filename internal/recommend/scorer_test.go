// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
)

func assertScores(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("score[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestNormalizeUserKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"42", "42"},
		{"007", "7"},
		{"-3", "-3"},
		{"+5", "5"},
		{"alice", "alice"},
		{" 7", " 7"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserKey(tt.raw); got != tt.want {
			t.Errorf("NormalizeUserKey(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCollaborativeScoresIndexAligned(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	for _, workers := range []int{0, 1, 2, 3, 5, 16} {
		s := NewScorer(store, workers)
		got, err := s.CollaborativeScores(context.Background(), "1")
		if err != nil {
			t.Fatalf("workers=%d: error = %v", workers, err)
		}
		assertScores(t, got, []float64{0.9, 0.8, 0.1, 0.5, 0.6})
	}
}

func TestCollaborativeScoresNormalizesKey(t *testing.T) {
	t.Parallel()

	pred := &userPredictor{}
	store, err := artifacts.NewStore(artifacts.Params{
		ItemIDs:    []int64{10, 20},
		Similarity: make([]float64, 4),
		Predictor:  pred,
		Alpha:      1,
		TopN:       1,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := NewScorer(store, 2).CollaborativeScores(context.Background(), "0042")
	if err != nil {
		t.Fatal(err)
	}
	assertScores(t, got, []float64{10, 20})
	if pred.keys["42"] != 2 || len(pred.keys) != 1 {
		t.Errorf("predictor keys = %v, want only \"42\"", pred.keys)
	}
}

func TestCollaborativeScoresCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScorer(scenarioStore(t), 2).CollaborativeScores(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestContentScores(t *testing.T) {
	t.Parallel()

	s := NewScorer(scenarioStore(t), 1)

	tests := []struct {
		name  string
		liked []int64
		want  []float64
	}{
		{"average of two rows", []int64{1, 2}, []float64{0.9, 0.9, 0.15, 0.15, 0.35}},
		{"single row", []int64{5}, []float64{0.3, 0.4, 0.3, 0.5, 1}},
		{"no likes", nil, []float64{0, 0, 0, 0, 0}},
		{"only unknown ids", []int64{99, 100}, []float64{0, 0, 0, 0, 0}},
		{"unknown ids skipped", []int64{1, 99, 2}, []float64{0.9, 0.9, 0.15, 0.15, 0.35}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertScores(t, s.ContentScores(tt.liked), tt.want)
		})
	}
}

func TestBlend(t *testing.T) {
	t.Parallel()

	s := NewScorer(scenarioStore(t), 1)
	got := s.Blend(
		[]float64{0.9, 0.8, 0.1, 0.5, 0.6},
		[]float64{0.9, 0.9, 0.15, 0.15, 0.35},
	)
	assertScores(t, got, []float64{0.9, 0.85, 0.125, 0.325, 0.475})
}

func TestHybridScores(t *testing.T) {
	t.Parallel()

	got, err := NewScorer(scenarioStore(t), 4).HybridScores(context.Background(), "1", []int64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	assertScores(t, got, []float64{0.9, 0.85, 0.125, 0.325, 0.475})
}
