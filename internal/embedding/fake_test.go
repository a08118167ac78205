// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"sync"
)

// countingEmbedder wraps an Embedder and records every call.
type countingEmbedder struct {
	Embedder

	mu    sync.Mutex
	calls [][]string
	err   error
	// mangle, when set, rewrites the output before it is returned.
	mangle func([][]float64) [][]float64
}

func newCounting(inner Embedder) *countingEmbedder {
	return &countingEmbedder{Embedder: inner}
}

func (c *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	c.mu.Lock()
	c.calls = append(c.calls, append([]string(nil), texts...))
	err, mangle := c.err, c.mangle
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	vecs, err := c.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if mangle != nil {
		vecs = mangle(vecs)
	}
	return vecs, nil
}

func (c *countingEmbedder) Calls() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
