// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/logging"
)

// Load reads the manifest at manifestPath and every artifact it references.
//
// Errors wrap ErrMissingArtifact when a referenced file does not exist and
// ErrCorruptArtifact for anything that exists but cannot be used.
func Load(ctx context.Context, manifestPath string) (*Store, error) {
	start := time.Now()
	logger := logging.WithComponent("artifacts")

	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	model, err := LoadSVDModel(manifest.resolve(manifest.CollaborativeModel))
	if err != nil {
		return nil, err
	}

	similarity, n, err := ReadSimilarityMatrix(manifest.resolve(manifest.SimilarityMatrix))
	if err != nil {
		return nil, err
	}
	if n != len(manifest.ItemIDs) {
		return nil, fmt.Errorf("%w: similarity matrix is %dx%d but universe has %d items",
			ErrCorruptArtifact, n, n, len(manifest.ItemIDs))
	}

	reader, err := openCSVReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	defer func() { _ = reader.Close() }()

	metadata, err := reader.ReadMetadata(ctx, manifest.resolve(manifest.Metadata))
	if err != nil {
		return nil, err
	}
	popularity, err := reader.ReadPopularity(ctx, manifest.resolve(manifest.Popularity))
	if err != nil {
		return nil, err
	}

	store, err := NewStore(Params{
		ItemIDs:    manifest.ItemIDs,
		Similarity: similarity,
		Predictor:  model,
		Metadata:   metadata,
		Popularity: popularity,
		Alpha:      *manifest.Alpha,
		TopN:       manifest.TopN,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("items", store.Len()).
		Int("metadata_rows", store.MetadataCount()).
		Int("popular_items", len(store.Popularity())).
		Int("svd_users", len(model.Users)).
		Float64("alpha", store.Alpha()).
		Int("top_n", store.TopN()).
		Dur("duration", time.Since(start)).
		Msg("Recommendation artifacts loaded")

	return store, nil
}
