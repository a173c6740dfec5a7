// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package api exposes ReelRank over HTTP using the chi router.

Routes:

	POST /api/v1/auth/signup        create account, set session cookie (201)
	POST /api/v1/auth/login         verify password, set session cookie
	POST /api/v1/auth/logout        expire the session cookie (auth)
	GET  /api/v1/auth/status        current session, never 401
	GET  /api/v1/recommend/initial  recommendations from history (auth)
	POST /api/v1/recommend          record likes/dislikes, refreshed list (auth)
	GET  /health/live               liveness
	GET  /health/ready              readiness: database ping and loaded artifacts
	GET  /metrics                   Prometheus exposition

Every JSON body uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}, "meta": {...}}

An empty recommendation list is not an error: the data carries an empty
"recommendations" array with "reason" and "message" set.
*/
package api
