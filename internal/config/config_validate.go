// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" && strings.TrimSpace(c.Catalog.EmbeddingsPath) == "" {
		return fmt.Errorf("CATALOG_PATH or EMBEDDINGS_PATH is required")
	}
	if c.Catalog.Rebuild && strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required when CATALOG_REBUILD=true")
	}
	return nil
}

// validProviders defines the allowed embedding providers
var validProviders = map[string]bool{
	"openai": true,
	"hash":   true,
}

func (c *Config) validateEmbedding() error {
	e := c.Embedding
	if !validProviders[e.Provider] {
		return fmt.Errorf("EMBEDDING_PROVIDER must be one of: openai, hash (got %q)", e.Provider)
	}
	if e.Provider == "openai" {
		if e.APIKey == "" && e.BaseURL == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=openai (or set OPENAI_BASE_URL for a local server)")
		}
		if strings.TrimSpace(e.Model) == "" {
			return fmt.Errorf("EMBEDDING_MODEL is required when EMBEDDING_PROVIDER=openai")
		}
	}
	if e.Provider == "hash" && e.Dimensions < 1 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive for the hash provider")
	}
	if e.Dimensions < 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must not be negative")
	}
	if e.BatchSize < 1 || e.BatchSize > 2048 {
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be between 1 and 2048")
	}
	if e.Concurrency < 1 || e.Concurrency > 64 {
		return fmt.Errorf("EMBEDDING_CONCURRENCY must be between 1 and 64")
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
	}
	if e.QueryTimeout <= 0 {
		return fmt.Errorf("EMBEDDING_QUERY_TIMEOUT must be positive")
	}
	if e.MaxRetries < 0 {
		return fmt.Errorf("EMBEDDING_MAX_RETRIES must not be negative")
	}
	if e.MaxRetries > 0 && e.RetryDelay <= 0 {
		return fmt.Errorf("EMBEDDING_RETRY_DELAY must be positive when retries are enabled")
	}
	if e.RateLimit < 0 {
		return fmt.Errorf("EMBEDDING_RATE_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = 1 * time.Second
	maxRateLimitWindow   = 1 * time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
