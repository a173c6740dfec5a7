// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreLogger resets the global logger after a test that calls Init.
func restoreLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Init(DefaultConfig())
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
}

func TestInit(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Output: &buf})
	Info().Str("component", "test").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"component":"test"`) {
		t.Errorf("expected output to contain component field, got: %s", output)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("hidden")
	Warn().Msg("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info message should be filtered at warn level, got: %s", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("warn message should be written, got: %s", output)
	}
}

func TestErr(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Output: &buf})
	Err(errors.New("boom")).Msg("failed")

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" fatal ", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger := NewTestLogger(&buf)
	logger.Warn().Msg("captured")

	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("expected captured output, got: %s", buf.String())
	}
}
