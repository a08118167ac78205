// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookwise_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookwise_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Retrieval Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_query", "embedding_model", "internal"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookwise_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency including the query embedding",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Embedding Provider Metrics
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_embedding_requests_total",
			Help: "Total number of embedding model calls",
		},
		[]string{"provider", "outcome"}, // outcome: "success", "failure"
	)

	EmbeddingRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookwise_embedding_request_duration_seconds",
			Help:    "Duration of embedding model calls in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	EmbeddingTexts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_embedding_texts_total",
			Help: "Total number of texts sent to the embedding model",
		},
		[]string{"provider"},
	)

	EmbeddingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookwise_embedding_cache_hits_total",
			Help: "Total number of catalog texts served from the embedding cache",
		},
	)

	EmbeddingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookwise_embedding_cache_misses_total",
			Help: "Total number of catalog texts not found in the embedding cache",
		},
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookwise_catalog_items",
			Help: "Number of items in the loaded catalog",
		},
	)

	EmbeddingDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookwise_embedding_dimensions",
			Help: "Width of the catalog embedding vectors",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookwise_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookwise_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, path, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommend records one recommendation request.
func RecordRecommend(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordEmbedding records one embedding model call of n texts.
func RecordEmbedding(provider string, n int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	EmbeddingRequests.WithLabelValues(provider, outcome).Inc()
	EmbeddingRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	EmbeddingTexts.WithLabelValues(provider).Add(float64(n))
}

// RecordEmbeddingCache records cache lookups for a catalog batch.
func RecordEmbeddingCache(hits, misses int) {
	EmbeddingCacheHits.Add(float64(hits))
	EmbeddingCacheMisses.Add(float64(misses))
}

// SetCatalogSize publishes the loaded catalog shape.
func SetCatalogSize(items, dimensions int) {
	CatalogItems.Set(float64(items))
	EmbeddingDimensions.Set(float64(dimensions))
}
