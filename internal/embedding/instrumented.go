// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"time"

	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/metrics"
)

// Instrumented records call counts, latency and text volume for the
// wrapped provider.
type Instrumented struct {
	next Embedder
}

// NewInstrumented wraps next.
func NewInstrumented(next Embedder) *Instrumented {
	return &Instrumented{next: next}
}

// Name returns the wrapped provider's name.
func (i *Instrumented) Name() string { return i.next.Name() }

// Dimension returns the wrapped provider's width.
func (i *Instrumented) Dimension() int { return i.next.Dimension() }

// Embed forwards to the wrapped provider and records the outcome.
func (i *Instrumented) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	start := time.Now()
	vecs, err := i.next.Embed(ctx, texts)
	elapsed := time.Since(start)

	metrics.RecordEmbedding(i.next.Name(), len(texts), elapsed, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("provider", i.next.Name()).Int("texts", len(texts)).Dur("elapsed", elapsed).Msg("embedding call failed")
	} else {
		logging.Ctx(ctx).Debug().Str("provider", i.next.Name()).Int("texts", len(texts)).Dur("elapsed", elapsed).Msg("embedding call")
	}
	return vecs, err
}
