// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/catalog"
	"github.com/tomtom215/bookwise/internal/embedding"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/metrics"
)

// DefaultTopN is used when a caller does not ask for a specific count.
const DefaultTopN = 5

// Recommendation is one display record.
type Recommendation struct {
	Index       int     `json:"index"`
	Title       string  `json:"title"`
	Authors     string  `json:"authors"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Options tunes a Service.
type Options struct {
	// QueryTimeout bounds the query embedding call. Zero means no bound
	// beyond the caller's context.
	QueryTimeout time.Duration
	// DefaultTopN is reported to callers that omit top_n.
	DefaultTopN int
}

// Service answers recommendation queries against a fixed catalog.
// It is safe for concurrent use.
type Service struct {
	cat    *catalog.Catalog
	matrix *embedding.Matrix
	model  embedding.Embedder
	opts   Options
	logger zerolog.Logger
}

// NewService binds a catalog to its embedding matrix and the model that
// produced it.
func NewService(cat *catalog.Catalog, m *embedding.Matrix, model embedding.Embedder, opts Options) (*Service, error) {
	if cat == nil || m == nil || model == nil {
		return nil, errors.New("recommend: catalog, matrix and model are required")
	}
	if cat.Len() != m.Len() {
		return nil, fmt.Errorf("recommend: catalog has %d items but matrix has %d rows", cat.Len(), m.Len())
	}
	if m.Dim() != model.Dimension() {
		return nil, fmt.Errorf("recommend: matrix width %d does not match model %s width %d", m.Dim(), model.Name(), model.Dimension())
	}
	if opts.DefaultTopN <= 0 {
		opts.DefaultTopN = DefaultTopN
	}

	return &Service{
		cat:    cat,
		matrix: m,
		model:  model,
		opts:   opts,
		logger: logging.With().Str("component", "recommend").Logger(),
	}, nil
}

// Len returns the catalog size.
func (s *Service) Len() int { return s.cat.Len() }

// Dimension returns the embedding width.
func (s *Service) Dimension() int { return s.matrix.Dim() }

// ModelName returns the name of the query model.
func (s *Service) ModelName() string { return s.model.Name() }

// DefaultTopN returns the configured default result count.
func (s *Service) DefaultTopN() int { return s.opts.DefaultTopN }

// Recommend embeds query and returns up to topN catalog items, best first.
// A negative topN is treated as 0.
func (s *Service) Recommend(ctx context.Context, query string, topN int) ([]Recommendation, error) {
	start := time.Now()
	recs, err := s.recommend(ctx, query, topN)

	outcome := "success"
	if err != nil {
		outcome = string(KindOf(err))
	}
	metrics.RecordRecommend(outcome, time.Since(start))
	return recs, err
}

func (s *Service) recommend(ctx context.Context, query string, topN int) ([]Recommendation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	embedCtx := ctx
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	vec, err := embedding.EmbedOne(embedCtx, s.model, query)
	if err != nil {
		return nil, err
	}

	ranked := Rank(vec, s.matrix, topN)
	out := make([]Recommendation, len(ranked))
	for i, r := range ranked {
		item := s.cat.Item(r.Index)
		out[i] = Recommendation{
			Index:       item.Index,
			Title:       item.Title,
			Authors:     item.Authors,
			Description: Describe(item.Authors),
			Score:       r.Score,
		}
	}

	l := s.logger.With().Str("request_id", logging.RequestIDFromContext(ctx)).Logger()
	l.Debug().
		Int("top_n", topN).
		Int("results", len(out)).
		Msg("recommendations computed")

	return out, nil
}

// Describe renders the description shown under a title.
func Describe(authors string) string {
	authors = strings.TrimSpace(authors)
	if authors == "" {
		return "By Unknown"
	}
	return "By " + authors
}
