// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package artifacts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var npyMagic = []byte("\x93NUMPY")

// encodeNPY builds a version 1 .npy payload the way numpy.save does.
func encodeNPY(t *testing.T, descr string, shape string, values []float64) []byte {
	t.Helper()

	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shape)
	// magic(6) + version(2) + len(2) + header + '\n' padded to 64 bytes.
	total := 10 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(header))); err != nil {
		t.Fatal(err)
	}
	buf.WriteString(header)

	for _, v := range values {
		var err error
		switch descr {
		case "<f4":
			err = binary.Write(&buf, binary.LittleEndian, float32(v))
		default:
			err = binary.Write(&buf, binary.LittleEndian, v)
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func writeNPY(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSimilarityMatrix(t *testing.T) {
	t.Parallel()

	values := []float64{1, 0.25, 0.25, 1}
	tests := []struct {
		name  string
		descr string
	}{
		{"float64", "<f8"},
		{"float32", "<f4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeNPY(t, t.TempDir(), "sim.npy", encodeNPY(t, tt.descr, "(2, 2)", values))

			got, n, err := ReadSimilarityMatrix(path)
			if err != nil {
				t.Fatalf("ReadSimilarityMatrix() error = %v", err)
			}
			if n != 2 {
				t.Fatalf("n = %d, want 2", n)
			}
			for i := range values {
				if math.Abs(got[i]-values[i]) > 1e-6 {
					t.Errorf("got[%d] = %v, want %v", i, got[i], values[i])
				}
			}
		})
	}
}

func TestReadSimilarityMatrixErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, _, err := ReadSimilarityMatrix(filepath.Join(dir, "nope.npy")); !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("missing: error = %v, want ErrMissingArtifact", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"not npy", []byte("hello world, definitely not numpy")},
		{"not square", encodeNPY(t, "<f8", "(2, 3)", make([]float64, 6))},
		{"one dimensional", encodeNPY(t, "<f8", "(4,)", make([]float64, 4))},
		{"unsupported dtype", encodeNPY(t, "<i8", "(1, 1)", []float64{1})},
		{"truncated payload", encodeNPY(t, "<f8", "(2, 2)", []float64{1, 2})},
		{"shape larger than file", encodeNPY(t, "<f8", "(3037000500, 3037000500)", nil)},
	}

	for i, tt := range tests {
		path := writeNPY(t, dir, fmt.Sprintf("bad%d.npy", i), tt.data)
		if _, _, err := ReadSimilarityMatrix(path); !errors.Is(err, ErrCorruptArtifact) {
			t.Errorf("%s: error = %v, want ErrCorruptArtifact", tt.name, err)
		}
	}
}

func TestDecodeSquareNPYRejectsOversizedShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		descr string
		shape string
	}{
		{"overflowing float64", "<f8", "(3037000500, 3037000500)"},
		{"overflowing float32", "<f4", "(4294967296, 4294967296)"},
		{"slightly too large", "<f8", "(64, 64)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := encodeNPY(t, tt.descr, tt.shape, []float64{1, 2, 3, 4})
			_, _, err := decodeSquareNPY(bytes.NewReader(data), int64(len(data)))
			if err == nil {
				t.Fatal("decodeSquareNPY() succeeded for a shape the payload cannot hold")
			}
		})
	}
}
