// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package metrics provides Prometheus metrics for Bookwise.

All collectors are registered on the default registry through promauto
and exposed at GET /metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - bookwise_api_requests_total{method,path,status}
  - bookwise_api_request_duration_seconds{method,path}
  - bookwise_api_active_requests

Retrieval:
  - bookwise_recommend_requests_total{outcome}
  - bookwise_recommend_duration_seconds

Embedding model:
  - bookwise_embedding_requests_total{provider,outcome}
  - bookwise_embedding_request_duration_seconds{provider}
  - bookwise_embedding_texts_total{provider}
  - bookwise_embedding_cache_hits_total, bookwise_embedding_cache_misses_total

Catalog:
  - bookwise_catalog_items
  - bookwise_embedding_dimensions

Circuit breaker:
  - bookwise_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - bookwise_circuit_breaker_requests_total{name,result}
  - bookwise_circuit_breaker_consecutive_failures{name}
  - bookwise_circuit_breaker_transitions_total{name,from,to}

Path labels use chi route patterns, never raw URLs, so cardinality stays
bounded.
*/
package metrics
