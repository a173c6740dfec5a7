// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func claimsEcho(t *testing.T, gotUser *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			*gotUser = claims.UserID
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	manager := newTestJWTManager(t)
	token, err := manager.GenerateToken(7, "erin")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantUser   int64
	}{
		{name: "bearer header", header: "Bearer " + token, wantStatus: http.StatusNoContent, wantUser: 7},
		{name: "cookie", cookie: token, wantStatus: http.StatusNoContent, wantUser: 7},
		{name: "header wins over cookie", header: "Bearer " + token, cookie: "garbage", wantStatus: http.StatusNoContent, wantUser: 7},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser int64
			var unauthorizedCalls int
			mw := NewMiddleware(manager, "session", func(w http.ResponseWriter, _ *http.Request, _ string) {
				unauthorizedCalls++
				w.WriteHeader(http.StatusUnauthorized)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(claimsEcho(t, &gotUser)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %d, want %d", gotUser, tt.wantUser)
			}
			if tt.wantStatus == http.StatusUnauthorized && unauthorizedCalls != 1 {
				t.Errorf("unauthorized handler called %d times, want 1", unauthorizedCalls)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	manager := newTestJWTManager(t)
	mw := NewMiddleware(manager, "", nil)
	if mw.CookieName() != DefaultCookieName {
		t.Errorf("CookieName() = %q, want %q", mw.CookieName(), DefaultCookieName)
	}

	token, err := manager.GenerateToken(9, "frank")
	if err != nil {
		t.Fatal(err)
	}

	var gotUser int64
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token})
	rec := httptest.NewRecorder()
	mw.Optional(claimsEcho(t, &gotUser)).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || gotUser != 9 {
		t.Errorf("with token: status %d user %d", rec.Code, gotUser)
	}

	gotUser = 0
	rec = httptest.NewRecorder()
	mw.Optional(claimsEcho(t, &gotUser)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent || gotUser != 0 {
		t.Errorf("anonymous: status %d user %d", rec.Code, gotUser)
	}
}

func TestAuthenticate_DefaultUnauthorized(t *testing.T) {
	mw := NewMiddleware(newTestJWTManager(t), "", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
