// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package recommend ranks the book catalog against a free-text query.
//
// # Architecture
//
// A query is embedded once with the same model the catalog matrix was built
// with, scored against every catalog row by cosine similarity, and the
// highest scoring rows are mapped back to display records:
//
//	query ──▶ Embedder ──▶ Rank(matrix) ──▶ []Recommendation
//
// Search is exhaustive. The catalog is small enough to hold in memory and a
// full scan keeps results exact and reproducible.
//
// # Determinism
//
// Rank orders by descending score and breaks ties by ascending catalog
// index, so the same query, matrix and top-N always produce the same list.
//
// # Startup
//
// Bootstrap loads the catalog (preferring the persisted embedded copy),
// fills missing vectors through embedding.Store and returns a ready
// Service. Any failure there is fatal: a service without its catalog has
// nothing to serve.
//
// # Thread Safety
//
// Service is immutable after construction and safe for concurrent use.
//
// # Errors
//
// KindOf classifies errors into the kinds reported to clients:
// data_format, embedding_model, invalid_query and internal.
package recommend
