// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
)

const testSecret = "api_test_secret_that_is_definitely_long_enough"

// fakeRecommender records calls and returns canned results.
type fakeRecommender struct {
	mu           sync.Mutex
	initial      *recommend.Result
	feedback     *recommend.Result
	err          error
	lastUser     int64
	lastLiked    []int64
	lastDisliked []int64
}

func (f *fakeRecommender) InitialRecommendations(_ context.Context, userID int64) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.initial, nil
}

func (f *fakeRecommender) SubmitFeedback(_ context.Context, userID int64, liked, disliked []int64) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUser = userID
	f.lastLiked = liked
	f.lastDisliked = disliked
	if f.err != nil {
		return nil, f.err
	}
	return f.feedback, nil
}

// fakeAccounts keeps users in memory and issues real tokens.
type fakeAccounts struct {
	mu     sync.Mutex
	tokens *auth.JWTManager
	users  map[string]string
	nextID int64
	err    error
}

func (f *fakeAccounts) Signup(_ context.Context, username, password string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(password) < 8 {
		return nil, auth.ErrPasswordTooShort
	}
	if _, ok := f.users[username]; ok {
		return nil, models.ErrUserExists
	}
	f.nextID++
	f.users[username] = password
	return f.session(f.nextID, username)
}

func (f *fakeAccounts) Login(_ context.Context, username, password string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if stored, ok := f.users[username]; !ok || stored != password {
		return nil, auth.ErrInvalidCredentials
	}
	return f.session(1, username)
}

func (f *fakeAccounts) session(id int64, username string) (*auth.Session, error) {
	token, err := f.tokens.GenerateToken(id, username)
	if err != nil {
		return nil, err
	}
	return &auth.Session{User: &models.User{ID: id, Username: username}, Token: token}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errPingFailed = errors.New("ping failed")

type testEnv struct {
	handler     http.Handler
	recommender *fakeRecommender
	accounts    *fakeAccounts
	tokens      *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatal(err)
	}

	rec := &fakeRecommender{
		initial: &recommend.Result{
			Items: []recommend.RecommendedItem{
				{ItemID: 5, Title: "The Matrix", Genres: []string{"Action", "Sci-Fi"}, PosterURL: "https://img/603.jpg"},
			},
			Policy: recommend.PolicyCold,
		},
		feedback: &recommend.Result{
			Items:  []recommend.RecommendedItem{{ItemID: 4, PosterURL: "https://img/placeholder.png"}},
			Policy: recommend.PolicyWarm,
		},
	}
	accounts := &fakeAccounts{tokens: tokens, users: map[string]string{}}

	handler := NewHandler(HandlerDeps{
		Recommender:   rec,
		Accounts:      accounts,
		Database:      fakePinger{},
		ArtifactItems: 5,
		Cookie:        CookieSettings{Name: "reelrank_session", MaxAge: time.Hour},
	})

	chiMW := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	authMW := auth.NewMiddleware(tokens, "reelrank_session", WriteUnauthorized)

	return &testEnv{
		handler:     NewRouter(handler, authMW, chiMW).Setup(),
		recommender: rec,
		accounts:    accounts,
		tokens:      tokens,
	}
}

func (e *testEnv) bearer(t *testing.T, userID int64) string {
	t.Helper()
	token, err := e.tokens.GenerateToken(userID, "tester")
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func (e *testEnv) do(t *testing.T, method, path, authHeader, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// envelope is APIResponse with Data kept raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}
