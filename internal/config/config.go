// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig locates the book catalog and its persisted embedding table.
//
// Environment Variables:
//   - CATALOG_PATH: source CSV with name, authors and combine_feat columns
//   - EMBEDDINGS_PATH: CSV with an embedding column, written after the first embed
//   - CATALOG_REBUILD: ignore EMBEDDINGS_PATH and re-embed from CATALOG_PATH (default: false)
type CatalogConfig struct {
	Path           string `koanf:"path"`
	EmbeddingsPath string `koanf:"embeddings_path"`
	Rebuild        bool   `koanf:"rebuild"`
}

// EmbeddingConfig selects and tunes the sentence-embedding provider.
//
// Environment Variables:
//   - EMBEDDING_PROVIDER: openai or hash (default: hash)
//   - EMBEDDING_MODEL: model name sent to the provider
//   - EMBEDDING_DIMENSIONS: vector width; required for models without a known width
//   - OPENAI_API_KEY: API key (required for openai unless OPENAI_BASE_URL points at a local server)
//   - OPENAI_BASE_URL: OpenAI-compatible endpoint
//   - EMBEDDING_BATCH_SIZE: texts per API request (default: 64)
//   - EMBEDDING_CONCURRENCY: parallel API requests for catalog batches (default: 4)
//   - EMBEDDING_TIMEOUT: per API request timeout (default: 30s)
//   - EMBEDDING_QUERY_TIMEOUT: bound on embedding a single query (default: 10s)
//   - EMBEDDING_MAX_RETRIES: retries on transient failures (default: 3)
//   - EMBEDDING_RETRY_DELAY: initial backoff (default: 500ms)
//   - EMBEDDING_RATE_LIMIT: API requests per second, 0 = unlimited (default: 0)
//   - EMBEDDING_CACHE_DIR: badger directory memoizing catalog vectors, empty disables
type EmbeddingConfig struct {
	Provider     string        `koanf:"provider"`
	Model        string        `koanf:"model"`
	Dimensions   int           `koanf:"dimensions"`
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	BatchSize    int           `koanf:"batch_size"`
	Concurrency  int           `koanf:"concurrency"`
	Timeout      time.Duration `koanf:"timeout"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	MaxRetries   int           `koanf:"max_retries"`
	RetryDelay   time.Duration `koanf:"retry_delay"`
	RateLimit    float64       `koanf:"rate_limit"`
	CacheDir     string        `koanf:"cache_dir"`
}

// RecommendConfig holds retrieval defaults.
type RecommendConfig struct {
	// DefaultTopN is used when a request omits top_n. Default: 5
	DefaultTopN int `koanf:"default_top_n"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds the browser-facing protections. There is no
// authentication; the service is read-only.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from, in increasing priority:
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, config.yaml, or /etc/bookwise/config.yaml)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
