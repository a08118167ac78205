// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"errors"

	"github.com/tomtom215/bookwise/internal/catalog"
	"github.com/tomtom215/bookwise/internal/embedding"
)

// ErrInvalidQuery is returned for an empty or whitespace-only query.
var ErrInvalidQuery = errors.New("query must not be empty")

// Kind classifies an error for clients and logs.
type Kind string

// Error kinds.
const (
	KindDataFormat     Kind = "data_format"
	KindEmbeddingModel Kind = "embedding_model"
	KindInvalidQuery   Kind = "invalid_query"
	KindInternal       Kind = "internal"
)

// KindOf returns the kind of err. A nil error has no kind and returns "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidQuery) {
		return KindInvalidQuery
	}
	var dfe *catalog.DataFormatError
	if errors.As(err, &dfe) {
		return KindDataFormat
	}
	var me *embedding.ModelError
	if errors.As(err, &me) {
		return KindEmbeddingModel
	}
	return KindInternal
}

// IsUnavailable reports whether err is a model call rejected before it
// reached the model.
func IsUnavailable(err error) bool {
	var me *embedding.ModelError
	return errors.As(err, &me) && me.Unavailable
}
