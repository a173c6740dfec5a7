// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package tmdb resolves movie poster URLs from The Movie Database image API.

Resolution is best effort. ResolveImage never returns an error: a missing
API key, a missing TMDB id, a timeout, an HTTP error, an open circuit or an
empty image list all produce the configured placeholder URL.

Request path:

 1. Poster cache lookup (memory, Redis or Badger, see package cache)
 2. Token bucket rate limit (golang.org/x/time/rate)
 3. Circuit breaker (sony/gobreaker), tripping at a 60% failure rate
 4. GET {images_base_url}{id}/images?api_key=...
 5. First posters entry, else first backdrops entry, else first logos entry

Only successful resolutions are cached, so a transient failure is retried on
the next request for the same movie.
*/
package tmdb
