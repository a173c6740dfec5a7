// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package validation provides request payload validation using
go-playground/validator v10.

A single validator instance is shared process-wide (it caches struct
metadata and is safe for concurrent use). Field names in error messages are
taken from the json tag, so clients see the names they sent:

	type FeedbackRequest struct {
	    Liked []int64 `json:"likedMovieIds" validate:"max=500,dive,gt=0"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // apiErr.Message: "likedMovieIds[2] must be greater than 0"
	}

Custom tags:

	username   3 to 32 characters of letters, digits, '.', '_' or '-'
*/
package validation
