// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/reelrank/internal/logging"
)

func TestResponseWriter_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-123"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]int{"count": 3})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var data map[string]int
	env := decodeEnvelope(t, rec, &data)
	if !env.Success || env.Error != nil {
		t.Errorf("envelope = %+v", env)
	}
	if data["count"] != 3 {
		t.Errorf("data = %v", data)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-123" || env.Meta.Timestamp.IsZero() {
		t.Errorf("meta = %+v", env.Meta)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("bad") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"unauthorized", func(rw *ResponseWriter) { rw.Unauthorized("who") }, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"conflict", func(rw *ResponseWriter) { rw.Conflict("dup") }, http.StatusConflict, ErrCodeConflict},
		{"too many", func(rw *ResponseWriter) { rw.TooManyRequests("slow") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("oops") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("down") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("invalid", map[string]string{"f": "x"}) }, http.StatusBadRequest, ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-err"))
			rec := httptest.NewRecorder()

			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec, nil)
			if env.Success {
				t.Error("success = true on error response")
			}
			if env.Error == nil || env.Error.Code != tt.wantCode || env.Error.RequestID != "req-err" {
				t.Errorf("error = %+v", env.Error)
			}
			if len(env.Data) != 0 {
				t.Errorf("error response carries data: %s", env.Data)
			}
		})
	}
}
