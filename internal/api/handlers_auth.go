// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
)

// Signup handles POST /api/v1/auth/signup.
// Creates the account, sets the session cookie and returns 201.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CredentialsRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	session, err := h.accounts.Signup(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrUserExists):
		rw.Conflict("Username already exists. Please choose a different one.")
		return
	case errors.Is(err, auth.ErrPasswordTooShort):
		rw.ValidationError(err.Error(), map[string]string{"field": "password"})
		return
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("username", sanitizeLogValue(req.Username)).
			Msg("Signup failed")
		rw.InternalError("Internal server error")
		return
	}

	h.setSessionCookie(w, session.Token)
	rw.Created(AuthResponse{
		Message:  "Sign Up successful!",
		UserID:   session.User.ID,
		Username: session.User.Username,
		Token:    session.Token,
	})
}

// Login handles POST /api/v1/auth/login.
// Bad credentials answer 400 with INVALID_CREDENTIALS.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		rw.ValidationError("Username and password are required.", nil)
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			rw.Error(http.StatusBadRequest, ErrCodeInvalidCredentials, "Invalid username or password.")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
		rw.InternalError("Internal server error")
		return
	}

	h.setSessionCookie(w, session.Token)
	rw.Success(AuthResponse{
		Message:  "Login successful!",
		UserID:   session.User.ID,
		Username: session.User.Username,
		Token:    session.Token,
	})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so logging
// out only expires the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteSuccess(w, r, map[string]string{"message": "logged out successfully"})
}

// Status handles GET /api/v1/auth/status. Anonymous callers get
// is_logged_in=false rather than 401.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteSuccess(w, r, StatusResponse{IsLoggedIn: false})
		return
	}
	WriteSuccess(w, r, StatusResponse{
		IsLoggedIn: true,
		UserID:     claims.UserID,
		Username:   claims.Username,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookie.MaxAge > 0 {
		cookie.MaxAge = int(h.cookie.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}
