// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package logging provides the process-wide zerolog logger for Bookwise.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
// then log with structured fields:
//
//	logging.Info().Int("items", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("query embedding failed")
//
// Ctx attaches the request and correlation IDs placed in the context by
// the HTTP middleware. SlogHandler bridges log/slog callers (the suture
// event hook) into the same stream.
//
// Always terminate event chains with Msg or Send; an unterminated chain
// is never written.
package logging
