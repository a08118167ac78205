// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"fmt"
	"math"
)

// Embedder turns texts into fixed-width vectors.
//
// Embed returns exactly one vector per input text, in input order. Each
// vector has Dimension() components. Implementations must be safe for
// concurrent use.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbedOne embeds a single text and checks the result's shape.
func EmbedOne(ctx context.Context, model Embedder, text string) ([]float64, error) {
	vecs, err := model.Embed(ctx, []string{text})
	if err != nil {
		return nil, asModelError(model, "embed query", err)
	}
	if err := CheckVectors(model, vecs, 1); err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// CheckVectors verifies that vecs holds want vectors of the model's width
// with only finite components.
func CheckVectors(model Embedder, vecs [][]float64, want int) error {
	if len(vecs) != want {
		return &ModelError{
			Provider: model.Name(),
			Op:       "validate output",
			Err:      fmt.Errorf("got %d vectors for %d texts", len(vecs), want),
		}
	}
	dim := model.Dimension()
	for i, v := range vecs {
		if len(v) != dim {
			return &ModelError{
				Provider: model.Name(),
				Op:       "validate output",
				Err:      fmt.Errorf("vector %d has %d dimensions, want %d", i, len(v), dim),
			}
		}
		for j, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return &ModelError{
					Provider: model.Name(),
					Op:       "validate output",
					Err:      fmt.Errorf("vector %d component %d is not finite", i, j),
				}
			}
		}
	}
	return nil
}
