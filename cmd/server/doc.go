// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Command server runs the Bookwise recommendation HTTP service.

# Startup

 1. .env (optional) and configuration via koanf: defaults, config.yaml, environment
 2. Logging
 3. Embedding model chain (provider, metrics, circuit breaker, optional badger cache)
 4. Catalog bootstrap: load the embedded catalog if present, otherwise the
    source catalog, embed missing items and persist the result
 5. HTTP router and supervisor tree

Any failure before step 5 is fatal. Once serving, the catalog and its vectors
never change.

# Process Layout

	RootSupervisor ("bookwise")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (when EMBEDDING_CACHE_DIR is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Example

	export CATALOG_PATH=books.csv
	export EMBEDDINGS_PATH=books_with_embeddings.csv
	export EMBEDDING_PROVIDER=openai
	export OPENAI_API_KEY=sk-...
	./server

	curl -s localhost:8000/recommend -d '{"query":"space opera with politics","top_n":3}'

# Signals

SIGINT and SIGTERM stop the tree. In-flight requests get 10s to finish.
*/
package main
