// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"errors"
	"os"

	"github.com/tomtom215/bookwise/internal/catalog"
	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/embedding"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/metrics"
)

// BootstrapResult describes what startup loaded.
type BootstrapResult struct {
	Service *Service
	Source  string
	Stats   embedding.Stats
}

// Bootstrap loads the catalog, fills in missing embeddings with
// models.Catalog and returns a Service querying with models.Query.
//
// The persisted embedded catalog (catalog.embeddings_path) is preferred
// when it exists, so a restart does not re-embed anything. With
// catalog.rebuild set, catalog.path is loaded and every item is embedded
// again.
func Bootstrap(ctx context.Context, cfg *config.Config, models *embedding.Models) (*BootstrapResult, error) {
	source, err := selectSource(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.LoadFile(source)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Rebuild {
		cat = cat.WithoutEmbeddings()
	}

	logging.Info().
		Str("source", source).
		Int("items", cat.Len()).
		Bool("rebuild", cfg.Catalog.Rebuild).
		Msg("catalog loaded")

	m, stats, err := embedding.NewStore(cfg.Catalog.EmbeddingsPath).Fill(ctx, cat, models.Catalog)
	if err != nil {
		return nil, err
	}

	svc, err := NewService(cat, m, models.Query, Options{
		QueryTimeout: cfg.Embedding.QueryTimeout,
		DefaultTopN:  cfg.Recommend.DefaultTopN,
	})
	if err != nil {
		return nil, err
	}

	metrics.SetCatalogSize(svc.Len(), svc.Dimension())
	logging.Info().
		Int("items", stats.Items).
		Int("reused", stats.Reused).
		Int("computed", stats.Computed).
		Bool("persisted", stats.Persisted).
		Int("dimension", m.Dim()).
		Str("model", models.Query.Name()).
		Dur("duration", stats.Duration).
		Msg("recommendation service ready")

	return &BootstrapResult{Service: svc, Source: source, Stats: stats}, nil
}

// selectSource picks the file to load the catalog from.
func selectSource(cfg config.CatalogConfig) (string, error) {
	if !cfg.Rebuild && cfg.EmbeddingsPath != "" {
		_, err := os.Stat(cfg.EmbeddingsPath)
		switch {
		case err == nil:
			return cfg.EmbeddingsPath, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", &catalog.DataFormatError{Source: cfg.EmbeddingsPath, Msg: "cannot stat embedded catalog", Err: err}
		}
	}
	if cfg.Path == "" {
		return "", &catalog.DataFormatError{Source: cfg.EmbeddingsPath, Msg: "embedded catalog does not exist and catalog.path is empty"}
	}
	return cfg.Path, nil
}
