// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package validation checks decoded request bodies with go-playground/validator v10.
//
// One validator is shared process-wide (it caches struct metadata). Field
// errors use JSON names so messages match what the client sent:
//
//	type RecommendRequest struct {
//	    Query string `json:"query" validate:"required,notblank,max=4096"`
//	    TopN  *int   `json:"top_n,omitempty" validate:"omitempty,gte=0"`
//	}
//
//	if verr := validation.Struct(&req); verr != nil {
//	    // respond 400 invalid_query with verr.Error()
//	}
package validation
