// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package models

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserExists is returned when creating a user whose username is taken.
	ErrUserExists = errors.New("username already exists")

	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser stores a new user and returns it with ID and CreatedAt set.
	// Returns ErrUserExists when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByUsername returns ErrUserNotFound when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByID returns ErrUserNotFound when no user matches.
	GetUserByID(ctx context.Context, id int64) (*User, error)
}
