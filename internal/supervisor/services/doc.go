// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package services adapts Bookwise components to suture's Serve(ctx) model.

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a bounded drain timeout.

CacheGCService runs BadgerDB value log garbage collection for the embedding
cache on a ticker. It is only added when a cache directory is configured.

Each service implements fmt.Stringer so suture events name it.
*/
package services
