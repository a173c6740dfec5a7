// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooShort is returned by Signup below the configured minimum.
	ErrPasswordTooShort = errors.New("password too short")
)

// Session is the result of a successful signup or login.
type Session struct {
	User  *models.User
	Token string
}

// Service implements signup and login on top of a UserStore.
type Service struct {
	users     models.UserStore
	tokens    *JWTManager
	minLength int
	cost      int
}

// NewService creates an auth service. minPasswordLength below 1 disables
// the length check.
func NewService(users models.UserStore, tokens *JWTManager, minPasswordLength int) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		minLength: minPasswordLength,
		cost:      DefaultBcryptCost,
	}
}

// Tokens returns the manager used to issue and validate tokens.
func (s *Service) Tokens() *JWTManager { return s.tokens }

// Signup creates the account and signs the user in.
// Returns models.ErrUserExists when the username is taken.
func (s *Service) Signup(ctx context.Context, username, password string) (*Session, error) {
	if len(password) < s.minLength {
		return nil, fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, s.minLength)
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Str("username", username).Msg("User signed up")
	return s.session(user)
}

// Login verifies the credentials and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		logging.Ctx(ctx).Debug().Str("username", username).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
