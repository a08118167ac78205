// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, propagated to the logging context
  - Access Log: one structured log line per request
  - Prometheus Metrics: HTTP request/response instrumentation

All middleware uses the func(http.HandlerFunc) http.HandlerFunc shape; the
api package adapts it to chi's r.Use().

Middleware Stack:

	middleware.RequestID(           // Layer 1: request tracking
	    middleware.AccessLog(       // Layer 2: structured access log
	        middleware.PrometheusMetrics( // Layer 3: metrics
	            handler,            // Layer 4: business logic
	        ),
	    ),
	)

Metrics are labelled with the chi route pattern (for example
/api/v1/recommend) rather than the raw URL path, so unknown paths cannot
inflate label cardinality.
*/
package middleware
