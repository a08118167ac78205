// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
	"github.com/tomtom215/bookwise/internal/validation"
)

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Query string `json:"query" validate:"required,notblank,max=4096"`
	TopN  *int   `json:"top_n,omitempty" validate:"omitempty,gte=0"`
}

// RecommendationView is one entry of the response.
type RecommendationView struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// RecommendResponse is the body of a successful POST /recommend.
type RecommendResponse struct {
	Recommendations []RecommendationView `json:"recommendations"`
}

// Recommend handles POST /recommend and POST /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeError(w, r, http.StatusServiceUnavailable, recommend.KindInternal, "service is not ready")
		return
	}

	req, ok := h.decodeRecommendRequest(w, r)
	if !ok {
		return
	}

	topN := h.svc.DefaultTopN()
	if req.TopN != nil {
		topN = *req.TopN
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	recs, err := h.svc.Recommend(ctx, req.Query, topN)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := RecommendResponse{Recommendations: make([]RecommendationView, len(recs))}
	for i, rec := range recs {
		resp.Recommendations[i] = RecommendationView{
			Title:       rec.Title,
			Description: rec.Description,
			Score:       rec.Score,
		}
	}

	logging.Ctx(r.Context()).Info().
		Int("top_n", topN).
		Int("results", len(recs)).
		Msg("recommendations served")

	writeJSON(w, http.StatusOK, resp)
}

// decodeRecommendRequest reads, decodes and validates the body. On failure
// the error response has been written and ok is false.
func (h *Handler) decodeRecommendRequest(w http.ResponseWriter, r *http.Request) (req RecommendRequest, ok bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, recommend.KindInvalidQuery, "request body too large")
			return req, false
		}
		writeError(w, r, http.StatusBadRequest, recommend.KindInvalidQuery, "could not read request body")
		return req, false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("malformed recommend request")
		writeError(w, r, http.StatusBadRequest, recommend.KindInvalidQuery, "request body must be a JSON object with a query field")
		return req, false
	}
	if dec.More() {
		writeError(w, r, http.StatusBadRequest, recommend.KindInvalidQuery, "request body must contain a single JSON object")
		return req, false
	}

	if verr := validation.Struct(&req); verr != nil {
		writeError(w, r, http.StatusBadRequest, recommend.KindInvalidQuery, verr.Error())
		return req, false
	}
	return req, true
}
