// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 64 << 10

// Recommender is the retrieval contract the handlers call.
// *recommend.Service implements it.
type Recommender interface {
	Recommend(ctx context.Context, query string, topN int) ([]recommend.Recommendation, error)
	DefaultTopN() int
	Len() int
	Dimension() int
	ModelName() string
}

// DefaultRequestTimeout bounds one recommendation request.
const DefaultRequestTimeout = 30 * time.Second

// Handler serves the HTTP endpoints.
type Handler struct {
	svc            Recommender
	startTime      time.Time
	maxBodyBytes   int64
	requestTimeout time.Duration
}

// NewHandler creates a Handler. A nil svc reports not ready. A
// non-positive timeout selects DefaultRequestTimeout.
func NewHandler(svc Recommender, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Handler{
		svc:            svc,
		startTime:      time.Now(),
		maxBodyBytes:   DefaultMaxBodyBytes,
		requestTimeout: timeout,
	}
}
