// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/bookwise/internal/catalog"
	"github.com/tomtom215/bookwise/internal/logging"
)

// Store fills in and persists the catalog's embedding column.
type Store struct {
	// Path is where the embedded catalog is published. Empty disables
	// persistence.
	Path string
}

// NewStore returns a Store publishing to path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Stats describes what one Fill did.
type Stats struct {
	Items     int
	Reused    int
	Computed  int
	Persisted bool
	Duration  time.Duration
}

// Ensure returns the embedding matrix for cat, computing vectors only for
// items that lack one of the model's width. See Fill.
func (s *Store) Ensure(ctx context.Context, cat *catalog.Catalog, model Embedder) (*Matrix, error) {
	m, _, err := s.Fill(ctx, cat, model)
	return m, err
}

// Fill is Ensure with statistics.
//
// When every item already carries a vector of model.Dimension() width the
// matrix is assembled from them, the model is not called, and nothing is
// written. Otherwise the missing items' feature texts are sent to the model
// in a single Embed call, the results are validated, merged by index, and
// the completed table is written atomically to Path.
func (s *Store) Fill(ctx context.Context, cat *catalog.Catalog, model Embedder) (*Matrix, Stats, error) {
	start := time.Now()
	dim := model.Dimension()
	stats := Stats{Items: cat.Len()}

	if dim <= 0 {
		return nil, stats, &ModelError{Provider: model.Name(), Op: "dimension", Err: fmt.Errorf("invalid width %d", dim)}
	}

	missing := cat.Missing(dim)
	stats.Reused = cat.Len() - len(missing)
	stats.Computed = len(missing)

	rows := make([][]float64, cat.Len())
	for i, item := range cat.Items() {
		rows[i] = item.Embedding
	}

	if len(missing) == 0 {
		m, err := NewMatrix(rows, dim)
		stats.Duration = time.Since(start)
		return m, stats, err
	}

	stale := 0
	texts := make([]string, len(missing))
	for j, idx := range missing {
		if rows[idx] != nil {
			stale++
		}
		texts[j] = cat.Item(idx).Features
	}
	if stale > 0 {
		logging.Warn().
			Int("items", stale).
			Int("dimension", dim).
			Msg("persisted embeddings have the wrong width and will be recomputed")
	}

	logging.Info().
		Str("model", model.Name()).
		Int("missing", len(missing)).
		Int("reused", stats.Reused).
		Msg("computing catalog embeddings")

	vecs, err := model.Embed(ctx, texts)
	if err != nil {
		return nil, stats, asModelError(model, "embed catalog", err)
	}
	if err := CheckVectors(model, vecs, len(texts)); err != nil {
		return nil, stats, err
	}
	for j, idx := range missing {
		rows[idx] = vecs[j]
	}

	embedded, err := cat.WithEmbeddings(rows)
	if err != nil {
		return nil, stats, fmt.Errorf("merge embeddings: %w", err)
	}

	if s.Path != "" {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("persist embeddings: %w", err)
		}
		if err := embedded.WriteFile(s.Path); err != nil {
			return nil, stats, fmt.Errorf("persist embeddings: %w", err)
		}
		stats.Persisted = true
		logging.Info().Str("path", s.Path).Int("items", embedded.Len()).Msg("embedded catalog persisted")
	}

	m, err := NewMatrix(rows, dim)
	stats.Duration = time.Since(start)
	return m, stats, err
}
