// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend/artifacts"
)

const testPlaceholder = "https://example.test/placeholder.png"

// itemPredictor returns a fixed score per item regardless of user.
type itemPredictor map[int64]float64

func (p itemPredictor) Predict(_ string, itemID int64) float64 { return p[itemID] }

// userPredictor records the keys it was called with.
type userPredictor struct {
	mu   sync.Mutex
	keys map[string]int
}

func (p *userPredictor) Predict(userKey string, itemID int64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.keys == nil {
		p.keys = make(map[string]int)
	}
	p.keys[userKey]++
	return float64(itemID)
}

// scenarioStore is the five item fixture used throughout the package tests:
// alpha 0.5, top_n 2, cf = [0.9, 0.8, 0.1, 0.5, 0.6].
func scenarioStore(t *testing.T) *artifacts.Store {
	t.Helper()
	tmdb := int64(603)
	store, err := artifacts.NewStore(artifacts.Params{
		ItemIDs: []int64{1, 2, 3, 4, 5},
		Similarity: []float64{
			1, 0.8, 0.1, 0.2, 0.3,
			0.8, 1, 0.2, 0.1, 0.4,
			0.1, 0.2, 1, 0.3, 0.3,
			0.2, 0.1, 0.3, 1, 0.5,
			0.3, 0.4, 0.3, 0.5, 1,
		},
		Predictor: itemPredictor{1: 0.9, 2: 0.8, 3: 0.1, 4: 0.5, 5: 0.6},
		Metadata: []artifacts.ItemMetadata{
			{ItemID: 1, Title: "One", Genres: []string{"Drama"}},
			{ItemID: 4, Title: "Four", Genres: []string{"Comedy", "Romance"}},
			{ItemID: 5, Title: "Five", Genres: []string{"Sci-Fi"}, TMDBID: &tmdb},
		},
		Popularity: []int64{3, 1, 4},
		Alpha:      0.5,
		TopN:       2,
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

// uniformStore has n items with identical scores everywhere.
func uniformStore(t *testing.T, n, topN int, popularity []int64) *artifacts.Store {
	t.Helper()
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	store, err := artifacts.NewStore(artifacts.Params{
		ItemIDs:    ids,
		Similarity: make([]float64, n*n),
		Predictor:  itemPredictor{},
		Popularity: popularity,
		Alpha:      0.5,
		TopN:       topN,
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

// memoryLog is an InteractionLog backed by a slice, with the same dedup and
// atomicity contract as the real stores.
type memoryLog struct {
	mu       sync.Mutex
	rows     []Interaction
	clock    time.Time
	failNext error
	readErr  error
	appends  int
}

func newMemoryLog() *memoryLog {
	return &memoryLog{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryLog) AppendInteractions(_ context.Context, userID int64, feedback []Feedback) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends++

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return 0, err
	}

	inserted := 0
	for _, f := range feedback {
		if m.exists(userID, f) {
			continue
		}
		m.clock = m.clock.Add(time.Second)
		m.rows = append(m.rows, Interaction{UserID: userID, ItemID: f.ItemID, Rating: f.Rating, Timestamp: m.clock})
		inserted++
	}
	return inserted, nil
}

func (m *memoryLog) exists(userID int64, f Feedback) bool {
	for _, r := range m.rows {
		if r.UserID == userID && r.ItemID == f.ItemID && r.Rating == f.Rating {
			return true
		}
	}
	return false
}

func (m *memoryLog) InteractionsByUser(_ context.Context, userID int64) ([]Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}

	var out []Interaction
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	return out, nil
}

func (m *memoryLog) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// stubResolver returns "poster:<id>" for known ids and the placeholder otherwise.
type stubResolver struct {
	mu    sync.Mutex
	calls int
}

func (r *stubResolver) ResolveImage(_ context.Context, externalID *int64) string {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if externalID == nil {
		return testPlaceholder
	}
	return "poster:" + strconv.FormatInt(*externalID, 10)
}

var errStore = errors.New("disk full")

func testLogger() zerolog.Logger { return zerolog.Nop() }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Workers = 2
	return cfg
}

func newTestService(t *testing.T, store *artifacts.Store, log InteractionLog) (*Service, *stubResolver) {
	t.Helper()
	images := &stubResolver{}
	svc, err := NewService(store, log, images, testConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, images
}

func itemIDs(items []RecommendedItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ItemID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
