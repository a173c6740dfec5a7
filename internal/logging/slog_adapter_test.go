// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "http-server").
		WithGroup("restart").
		Warn("service restarted", "attempt", 3, "backoff", 2*time.Second)

	output := buf.String()
	checks := []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"http-server"`,
		`"restart.attempt":3`,
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
		{slog.LevelError + 4, "error"},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.level).String(); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %s, want %s", tt.level, got, tt.want)
		}
	}
}
