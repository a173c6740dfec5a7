// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
)

// ReadSimilarityMatrix reads a square float matrix from a NumPy .npy file and
// returns it row-major as float64, along with its dimension.
// Supported dtypes are little-endian float64 (<f8) and float32 (<f4), C order.
func ReadSimilarityMatrix(path string) ([]float64, int, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, 0, wrapOpenError(path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}

	data, n, err := decodeSquareNPY(bufio.NewReader(f), info.Size())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return data, n, nil
}

// decodeSquareNPY decodes an n x n matrix. size is the total byte length of
// the source and bounds the payload the header may claim.
func decodeSquareNPY(r io.Reader, size int64) ([]float64, int, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	descr := npy.Header.Descr
	if descr.Fortran {
		return nil, 0, fmt.Errorf("fortran-ordered arrays are not supported")
	}
	if len(descr.Shape) != 2 || descr.Shape[0] != descr.Shape[1] {
		return nil, 0, fmt.Errorf("similarity matrix must be square, got shape %v", descr.Shape)
	}

	var elemSize int64
	switch descr.Type {
	case "<f8":
		elemSize = 8
	case "<f4":
		elemSize = 4
	default:
		return nil, 0, fmt.Errorf("unsupported dtype %q", descr.Type)
	}

	n := descr.Shape[0]
	if n < 0 {
		return nil, 0, fmt.Errorf("invalid shape %v", descr.Shape)
	}
	// n*n*elemSize must fit in the file; divide instead of multiplying so a
	// corrupt shape cannot overflow.
	if n > 0 && int64(n) > size/elemSize/int64(n) {
		return nil, 0, fmt.Errorf("shape %v needs more data than the %d byte file holds", descr.Shape, size)
	}

	switch descr.Type {
	case "<f4":
		var narrow []float32
		if err := npy.Read(&narrow); err != nil {
			return nil, 0, fmt.Errorf("read float32 payload: %w", err)
		}
		out := make([]float64, len(narrow))
		for i, v := range narrow {
			out[i] = float64(v)
		}
		return out, n, nil
	default:
		var out []float64
		if err := npy.Read(&out); err != nil {
			return nil, 0, fmt.Errorf("read float64 payload: %w", err)
		}
		return out, n, nil
	}
}
