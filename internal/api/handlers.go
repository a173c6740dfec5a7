// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Recommender produces recommendation results. *recommend.Service
// implements it.
type Recommender interface {
	InitialRecommendations(ctx context.Context, userID int64) (*recommend.Result, error)
	SubmitFeedback(ctx context.Context, userID int64, liked, disliked []int64) (*recommend.Result, error)
}

// Accounts signs users up and in. *auth.Service implements it.
type Accounts interface {
	Signup(ctx context.Context, username, password string) (*auth.Session, error)
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CookieSettings controls the session cookie set at login.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// HandlerDeps bundles the collaborators of Handler.
type HandlerDeps struct {
	Recommender Recommender
	Accounts    Accounts
	Database    Pinger

	// ArtifactItems is the size of the loaded item universe, reported by
	// the readiness probe.
	ArtifactItems int

	Cookie CookieSettings

	// RequestTimeout bounds recommendation handlers; zero means no limit
	// beyond the client's own.
	RequestTimeout time.Duration
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_auth.go: signup, login, logout, status
//   - handlers_recommend.go: initial and feedback recommendations
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	recommender    Recommender
	accounts       Accounts
	db             Pinger
	artifactItems  int
	cookie         CookieSettings
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	cookie := deps.Cookie
	if cookie.Name == "" {
		cookie.Name = auth.DefaultCookieName
	}
	return &Handler{
		recommender:    deps.Recommender,
		accounts:       deps.Accounts,
		db:             deps.Database,
		artifactItems:  deps.ArtifactItems,
		cookie:         cookie,
		requestTimeout: deps.RequestTimeout,
		startTime:      time.Now(),
	}
}

// withTimeout applies the configured request timeout, if any.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}
