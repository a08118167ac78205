// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// Kinds reported by the transport in addition to recommend.Kind values.
const (
	KindRateLimited recommend.Kind = "rate_limited"
	KindNotFound    recommend.Kind = "not_found"
	KindNotAllowed  recommend.Kind = "method_not_allowed"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Kind      recommend.Kind `json:"kind"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, r *http.Request, status int, kind recommend.Kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Kind:      kind,
		Message:   message,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}})
}

// respondServiceError maps a recommend.Service error to a status and a
// client-safe message and logs it.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := recommend.KindOf(err)
	status, message := http.StatusInternalServerError, "internal error"

	switch kind {
	case recommend.KindInvalidQuery:
		status, message = http.StatusBadRequest, err.Error()
	case recommend.KindEmbeddingModel:
		status, message = http.StatusBadGateway, "embedding model request failed"
		switch {
		case recommend.IsUnavailable(err):
			status, message = http.StatusServiceUnavailable, "embedding model temporarily unavailable"
		case errors.Is(err, context.DeadlineExceeded):
			status, message = http.StatusGatewayTimeout, "embedding model timed out"
		}
	case recommend.KindDataFormat:
		message = "catalog data error"
	}

	logger := logging.Ctx(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("kind", string(kind)).Int("status", status).Msg("recommendation failed")

	writeError(w, r, status, kind, message)
}
