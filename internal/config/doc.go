// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package config provides centralized configuration management for Bookwise.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file, then environment variables. Only the environment variables
listed in envMappings are read.

# Configuration File

The first existing file among CONFIG_PATH, config.yaml, config.yml,
/etc/bookwise/config.yaml and /etc/bookwise/config.yml is loaded:

	catalog:
	  path: data/books.csv
	  embeddings_path: data/preprocessed_with_embeddings.csv
	embedding:
	  provider: openai
	  model: text-embedding-3-small
	  base_url: http://localhost:8080/v1
	  cache_dir: data/embedding-cache
	server:
	  port: 8000
	security:
	  cors_origins: [https://books.example.com]

# Environment Variables

Catalog:
  - CATALOG_PATH, EMBEDDINGS_PATH, CATALOG_REBUILD

Embedding:
  - EMBEDDING_PROVIDER, EMBEDDING_MODEL, EMBEDDING_DIMENSIONS
  - OPENAI_API_KEY, OPENAI_BASE_URL
  - EMBEDDING_BATCH_SIZE, EMBEDDING_CONCURRENCY, EMBEDDING_RATE_LIMIT
  - EMBEDDING_TIMEOUT, EMBEDDING_QUERY_TIMEOUT
  - EMBEDDING_MAX_RETRIES, EMBEDDING_RETRY_DELAY
  - EMBEDDING_CACHE_DIR

Server and security:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - CORS_ORIGINS (comma-separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Recommend and logging:
  - RECOMMEND_DEFAULT_TOP_N
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load returns an error when a value is out of range, when the openai
provider is selected without credentials or an endpoint, or when no
catalog source is configured.
*/
package config
