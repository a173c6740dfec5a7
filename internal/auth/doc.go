// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package auth provides account signup and login, JWT session tokens and the
HTTP middleware that authenticates API requests.

Passwords are stored as bcrypt hashes. Sessions are stateless HS256 tokens
carrying the numeric user id; clients present them either as an
"Authorization: Bearer <token>" header or as the HttpOnly session cookie
set at login.

	tokens, err := auth.NewJWTManager(&cfg.Security)
	svc := auth.NewService(userStore, tokens, cfg.Security.MinPasswordLength)
	mw := auth.NewMiddleware(tokens, cfg.Security.CookieName, nil)

	r.With(mw.Authenticate).Get("/api/v1/recommend/initial", handler)
*/
package auth
