// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"errors"
	"fmt"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/logging"
)

// Models holds the provider chains built from configuration.
//
// Query is provider → Instrumented → Breaker. Catalog is the same chain
// behind the badger cache when embedding.cache_dir is set, otherwise it is
// Query itself.
type Models struct {
	Query   Embedder
	Catalog Embedder

	cache *Cached
}

// New builds the provider chains described by cfg.
func New(cfg config.EmbeddingConfig) (*Models, error) {
	var base Embedder
	switch cfg.Provider {
	case "openai":
		o, err := NewOpenAI(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Dimensions:  cfg.Dimensions,
			BatchSize:   cfg.BatchSize,
			Concurrency: cfg.Concurrency,
			Timeout:     cfg.Timeout,
			MaxRetries:  cfg.MaxRetries,
			RetryDelay:  cfg.RetryDelay,
			RateLimit:   cfg.RateLimit,
		})
		if err != nil {
			return nil, &ModelError{Provider: "openai:" + cfg.Model, Op: "configure", Err: err}
		}
		base = o
	case "hash":
		base = NewHash("hash", cfg.Dimensions)
	default:
		return nil, &ModelError{Provider: cfg.Provider, Op: "configure", Err: errors.New("unknown provider")}
	}

	query := NewBreaker(NewInstrumented(base), DefaultBreakerSettings())
	models := &Models{Query: query, Catalog: query}

	if cfg.CacheDir != "" {
		cached, err := OpenCached(cfg.CacheDir, query)
		if err != nil {
			return nil, fmt.Errorf("embedding cache: %w", err)
		}
		models.cache = cached
		models.Catalog = cached
	}

	logging.Info().
		Str("provider", base.Name()).
		Int("dimension", base.Dimension()).
		Bool("cache", cfg.CacheDir != "").
		Msg("embedding model configured")

	return models, nil
}

// Close releases the cache, if any.
func (m *Models) Close() error {
	if m.cache != nil {
		return m.cache.Close()
	}
	return nil
}

// Cache returns the catalog cache, or nil when none is configured.
func (m *Models) Cache() *Cached {
	return m.cache
}
