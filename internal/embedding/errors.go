// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"errors"
	"fmt"
)

// ModelError reports that the embedding model could not be reached, failed,
// or produced output of the wrong shape.
type ModelError struct {
	Provider string
	Op       string

	// Unavailable is set when the call was rejected without reaching the
	// model, e.g. by an open circuit breaker.
	Unavailable bool

	Err error
}

func (e *ModelError) Error() string {
	msg := fmt.Sprintf("embedding model %s: %s", e.Provider, e.Op)
	if e.Unavailable {
		msg += " (unavailable)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// asModelError wraps err in a ModelError unless it already is one.
func asModelError(model Embedder, op string, err error) error {
	var me *ModelError
	if errors.As(err, &me) {
		return err
	}
	return &ModelError{Provider: model.Name(), Op: op, Err: err}
}
