// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package api provides the HTTP interface of the recommendation service.

Routes (chi):

	POST /recommend                 recommendation contract (frontend path)
	POST /api/v1/recommend          same handler under the versioned prefix
	GET  /api/v1/health/live        liveness probe
	GET  /api/v1/health/ready       readiness probe with catalog details
	GET  /metrics                   Prometheus exposition

Request and response bodies:

	{"query": "space opera with politics", "top_n": 3}

	{"recommendations": [{"title": "Dune", "description": "By Frank Herbert", "score": 0.83}]}

Errors always use one shape:

	{"error": {"kind": "invalid_query", "message": "query must not be empty", "request_id": "..."}}

Kinds map to status codes: invalid_query 400 (413 for oversized bodies),
embedding_model 502 (503 while the model circuit is open, 504 on timeout),
data_format and internal 500.

Middleware stack (global): request ID with logging context, real IP,
panic recovery, access log, CORS. The recommendation routes add
rate limiting (go-chi/httprate), security headers, Prometheus metrics, a
request body limit and a per-request timeout.
*/
package api
