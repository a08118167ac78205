// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/logging"
)

// GarbageCollector reclaims space in an on-disk store.
// *embedding.Cached implements it.
type GarbageCollector interface {
	CollectGarbage(discardRatio float64) error
}

// CacheGCConfig holds the collection schedule.
type CacheGCConfig struct {
	// Interval between collections. Default: 10m
	Interval time.Duration

	// DiscardRatio is the fraction of a value log file that must be stale
	// before it is rewritten. Default: 0.5
	DiscardRatio float64
}

// CacheGCService periodically garbage collects the embedding cache.
// Failures are logged and retried on the next tick.
type CacheGCService struct {
	gc     GarbageCollector
	config CacheGCConfig
	logger zerolog.Logger
	name   string
}

// NewCacheGCService creates the service, applying defaults for zero values.
func NewCacheGCService(gc GarbageCollector, cfg CacheGCConfig) *CacheGCService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.DiscardRatio <= 0 || cfg.DiscardRatio >= 1 {
		cfg.DiscardRatio = 0.5
	}
	return &CacheGCService{
		gc:     gc,
		config: cfg,
		logger: logging.With().Str("service", "cache-gc").Logger(),
		name:   "cache-gc",
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.config.Interval).Msg("cache gc running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *CacheGCService) collect() {
	start := time.Now()
	if err := s.gc.CollectGarbage(s.config.DiscardRatio); err != nil {
		s.logger.Warn().Err(err).Msg("embedding cache gc failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("embedding cache gc complete")
}

// String names the service in suture events.
func (s *CacheGCService) String() string {
	return s.name
}
