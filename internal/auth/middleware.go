// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/reelrank/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the *Claims of an authenticated request.
const ClaimsContextKey contextKey = "claims"

// DefaultCookieName is used when the configuration leaves it empty.
const DefaultCookieName = "token"

var (
	errMissingToken  = errors.New("unauthorized: missing token")
	errInvalidHeader = errors.New("unauthorized: invalid authorization header")
)

// UnauthorizedFunc writes the response for a rejected request.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, message string)

// Middleware authenticates requests with a Bearer token or session cookie.
type Middleware struct {
	jwtManager   *JWTManager
	cookieName   string
	unauthorized UnauthorizedFunc
}

// NewMiddleware creates the middleware. A nil unauthorized func falls back
// to http.Error.
func NewMiddleware(jwtManager *JWTManager, cookieName string, unauthorized UnauthorizedFunc) *Middleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if unauthorized == nil {
		unauthorized = func(w http.ResponseWriter, _ *http.Request, message string) {
			http.Error(w, message, http.StatusUnauthorized)
		}
	}
	return &Middleware{
		jwtManager:   jwtManager,
		cookieName:   cookieName,
		unauthorized: unauthorized,
	}
}

// CookieName returns the name of the session cookie.
func (m *Middleware) CookieName() string { return m.cookieName }

// Authenticate rejects requests without a valid token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claims(r)
		if err != nil {
			if errors.Is(err, errMissingToken) || errors.Is(err, errInvalidHeader) {
				m.unauthorized(w, r, err.Error())
				return
			}
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			m.unauthorized(w, r, "unauthorized: invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// Optional attaches claims when a valid token is present and otherwise lets
// the request through anonymously.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := m.claims(r); err == nil {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) claims(r *http.Request) (*Claims, error) {
	token, err := m.extractToken(r)
	if err != nil {
		return nil, err
	}
	return m.jwtManager.ValidateToken(token)
}

// extractToken reads the Authorization header, falling back to the cookie.
func (m *Middleware) extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return "", errMissingToken
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errInvalidHeader
	}
	return parts[1], nil
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.UserID)
}

// ClaimsFromContext returns the claims stored by Authenticate or Optional.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
