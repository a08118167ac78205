// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or
// points at a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookwise/config.yaml",
	"/etc/bookwise/config.yml",
}

// ConfigPathEnvVar names the variable holding an explicit config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:           "data/books.csv",
			EmbeddingsPath: "data/preprocessed_with_embeddings.csv",
		},
		Embedding: EmbeddingConfig{
			// hash runs offline; openai gives real semantic vectors.
			Provider:     "hash",
			Model:        "all-MiniLM-L6-v2",
			Dimensions:   384,
			BatchSize:    64,
			Concurrency:  4,
			Timeout:      30 * time.Second,
			QueryTimeout: 10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   500 * time.Millisecond,
		},
		Recommend: RecommendConfig{DefaultTopN: 5},
		Server: ServerConfig{
			Port:    8000,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// LoadWithKoanf layers defaults, then the optional YAML file, then the
// environment, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKeys maps lower-cased variable names to koanf paths. Anything else
// in the environment is ignored.
var envKeys = map[string]string{
	"catalog_path":    "catalog.path",
	"embeddings_path": "catalog.embeddings_path",
	"catalog_rebuild": "catalog.rebuild",

	"embedding_provider":      "embedding.provider",
	"embedding_model":         "embedding.model",
	"embedding_dimensions":    "embedding.dimensions",
	"openai_api_key":          "embedding.api_key",
	"openai_base_url":         "embedding.base_url",
	"embedding_batch_size":    "embedding.batch_size",
	"embedding_concurrency":   "embedding.concurrency",
	"embedding_timeout":       "embedding.timeout",
	"embedding_query_timeout": "embedding.query_timeout",
	"embedding_max_retries":   "embedding.max_retries",
	"embedding_retry_delay":   "embedding.retry_delay",
	"embedding_rate_limit":    "embedding.rate_limit",
	"embedding_cache_dir":     "embedding.cache_dir",

	"recommend_default_top_n": "recommend.default_top_n",

	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// listKeys hold comma-separated values in the environment. An empty list
// leaves the lower layers in place.
var listKeys = map[string]bool{
	"security.cors_origins": true,
}

// envTransformFunc returns the koanf path for an environment variable,
// or "" to skip it.
func envTransformFunc(key string) string {
	return envKeys[strings.ToLower(key)]
}

func envValue(key, value string) (string, any) {
	path := envTransformFunc(key)
	if path == "" || !listKeys[path] {
		return path, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return "", nil
	}
	return path, items
}
