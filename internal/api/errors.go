// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import "errors"

var (
	// ErrEmptyBody is returned by decodeJSON for a request without a body.
	ErrEmptyBody = errors.New("request body is required")

	// ErrBodyTooLarge is returned by decodeJSON above maxRequestBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)
