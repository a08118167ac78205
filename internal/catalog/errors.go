// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"fmt"
	"strings"
)

// DataFormatError reports a catalog source that cannot be turned into a
// canonical table: unreadable, empty, missing required columns, or
// structurally malformed. No partial catalog accompanies it.
type DataFormatError struct {
	Source string // file path, or "" for an anonymous reader
	Line   int    // 1-based CSV line, 0 when not line-specific
	Msg    string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("catalog data format")
	if e.Source != "" {
		b.WriteString(": ")
		b.WriteString(e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

func formatErr(line int, format string, args ...any) *DataFormatError {
	return &DataFormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
