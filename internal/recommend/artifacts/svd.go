// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

// LatentVector is the learned bias and factor vector of one user or item.
type LatentVector struct {
	Bias    float64   `json:"bias"`
	Factors []float64 `json:"factors"`
}

// SVDModel is a biased matrix-factorization model exported from training.
//
// Users are keyed by their raw training id string; items by item id.
// The estimate for (u, i) is
//
//	global_mean + b_u + b_i + q_i . p_u
//
// where each term participates only when known: an unknown user contributes
// no user bias, an unknown item no item bias, and the dot product requires
// both. The result is clipped to [RatingMin, RatingMax]. A completely cold
// pair therefore predicts the global mean.
type SVDModel struct {
	GlobalMean float64                 `json:"global_mean"`
	RatingMin  float64                 `json:"rating_min"`
	RatingMax  float64                 `json:"rating_max"`
	Users      map[string]LatentVector `json:"users"`
	Items      map[string]LatentVector `json:"items"`

	items map[int64]LatentVector
}

// LoadSVDModel reads an SVDModel from a JSON file.
func LoadSVDModel(path string) (*SVDModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapOpenError(path, err)
	}

	var m SVDModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: decode collaborative model: %v", ErrCorruptArtifact, path, err)
	}
	if err := m.prepare(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return &m, nil
}

// prepare validates the decoded model and indexes items by numeric id.
func (m *SVDModel) prepare() error {
	if m.RatingMin == 0 && m.RatingMax == 0 {
		m.RatingMin, m.RatingMax = 1, 5
	}
	if m.RatingMin > m.RatingMax {
		return fmt.Errorf("rating_min %v greater than rating_max %v", m.RatingMin, m.RatingMax)
	}

	m.items = make(map[int64]LatentVector, len(m.Items))
	for key, vec := range m.Items {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("item key %q is not an integer id", key)
		}
		m.items[id] = vec
	}
	return nil
}

// Predict implements Predictor.
func (m *SVDModel) Predict(userKey string, itemID int64) float64 {
	est := m.GlobalMean

	user, userKnown := m.Users[userKey]
	item, itemKnown := m.items[itemID]

	if userKnown {
		est += user.Bias
	}
	if itemKnown {
		est += item.Bias
	}
	if userKnown && itemKnown {
		est += dot(user.Factors, item.Factors)
	}

	switch {
	case est < m.RatingMin:
		return m.RatingMin
	case est > m.RatingMax:
		return m.RatingMax
	default:
		return est
	}
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
