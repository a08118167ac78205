// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package embedding turns catalog and query text into vectors and keeps the
catalog's embedding table filled and persisted.

# Providers

An Embedder maps texts to fixed-width vectors:

  - OpenAI: any OpenAI-compatible /v1/embeddings endpoint (OpenAI itself, or a
    local sentence-transformers server via base_url). Batches run
    concurrently with retry, backoff and client-side rate limiting.
  - Hash: offline FNV bag-of-words vectors for development and tests.

Wrappers compose around a provider:

  - Instrumented records Prometheus metrics.
  - Breaker stops calling a failing model and reports ModelError{Unavailable: true}.
  - Cached memoizes catalog vectors in BadgerDB.

New assembles these from configuration.

# Store

Store.Ensure is the idempotent cache fill: items that already carry a
vector of the model's width are reused, the rest are embedded in one
Embed call, and the completed catalog is published atomically. A second
Ensure over the published catalog makes no model call and writes nothing.

Every failure attributable to the model, including output of the wrong
width or with non-finite components, is a *ModelError.
*/
package embedding
