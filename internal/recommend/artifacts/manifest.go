// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a trained artifact bundle.
//
//	alpha: 0.5
//	top_n: 10
//	item_ids: [1, 2, 3]
//	collaborative_model: svd_model.json
//	similarity_matrix: content_similarity.npy
//	metadata: combined_data.csv
//	popularity: popular_movies.csv
//
// Relative paths are resolved against the manifest's directory.
type Manifest struct {
	Alpha              *float64 `yaml:"alpha"`
	TopN               int      `yaml:"top_n"`
	ItemIDs            []int64  `yaml:"item_ids"`
	CollaborativeModel string   `yaml:"collaborative_model"`
	SimilarityMatrix   string   `yaml:"similarity_matrix"`
	Metadata           string   `yaml:"metadata"`
	Popularity         string   `yaml:"popularity"`

	dir string
}

// ReadManifest parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapOpenError(path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: parse yaml: %v", ErrCorruptArtifact, path, err)
	}
	m.dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	switch {
	case m.Alpha == nil:
		return errors.New("alpha is required")
	case m.TopN < 1:
		return errors.New("top_n must be at least 1")
	case len(m.ItemIDs) == 0:
		return errors.New("item_ids is empty")
	case m.CollaborativeModel == "":
		return errors.New("collaborative_model path is required")
	case m.SimilarityMatrix == "":
		return errors.New("similarity_matrix path is required")
	case m.Metadata == "":
		return errors.New("metadata path is required")
	case m.Popularity == "":
		return errors.New("popularity path is required")
	}
	return nil
}

// resolve returns p joined to the manifest directory unless it is absolute.
func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// wrapOpenError classifies a file open failure.
func wrapOpenError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingArtifact, path)
	}
	return fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
}
