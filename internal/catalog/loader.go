// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/bookwise/internal/logging"
)

const utf8BOM = "\ufeff"

// LoadFile opens path and loads it with Load. An unreadable file is a
// DataFormatError carrying the path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, &DataFormatError{Source: path, Msg: "open catalog source", Err: err}
	}
	defer func() { _ = f.Close() }()

	cat, err := Load(bufio.NewReader(f))
	if err != nil {
		var dfe *DataFormatError
		if errors.As(err, &dfe) && dfe.Source == "" {
			dfe.Source = path
		}
		return nil, err
	}
	return cat, nil
}

// Load reads a CSV catalog and returns its canonical form:
//   - header names trimmed and lower-cased
//   - rows whose title or feature text is blank dropped
//   - title and feature text trimmed and NFC-normalized
//   - duplicate (title, features) pairs dropped, first occurrence kept
//   - items re-indexed contiguously from 0
//
// An embedding column, when present, is decoded per row. Undecodable cells
// are logged and treated as missing so the store recomputes them.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, formatErr(0, "empty source")
	}
	if err != nil {
		return nil, csvErr(err)
	}

	layout, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var (
		items     []Item
		seen      = make(map[[2]string]struct{})
		dropped   int
		badVector int
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvErr(err)
		}
		line, _ := cr.FieldPos(0)

		if len(record) > len(header) {
			return nil, formatErr(line, "row has %d fields, header has %d", len(record), len(header))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}

		title := canonicalText(record[layout.title])
		features := canonicalText(record[layout.features])
		if title == "" || features == "" {
			dropped++
			continue
		}

		key := [2]string{title, features}
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}

		item := Item{
			Index:    len(items),
			Title:    title,
			Features: features,
			Values:   make([]string, 0, len(layout.columns)),
		}
		for _, src := range layout.sources {
			switch src {
			case layout.title:
				item.Values = append(item.Values, title)
			case layout.features:
				item.Values = append(item.Values, features)
			default:
				item.Values = append(item.Values, record[src])
			}
		}
		if layout.authors >= 0 {
			item.Authors = strings.TrimSpace(record[layout.authors])
		}
		if layout.embedding >= 0 {
			vec, err := DecodeVector(record[layout.embedding])
			if err != nil {
				badVector++
				logging.Warn().Err(err).Int("line", line).Str("title", title).Msg("ignoring unreadable persisted embedding")
			}
			item.Embedding = vec
		}

		items = append(items, item)
	}

	logging.Debug().
		Int("items", len(items)).
		Int("dropped", dropped).
		Int("bad_embeddings", badVector).
		Msg("catalog parsed")

	return &Catalog{columns: layout.columns, items: items}, nil
}

// headerLayout records where the interesting columns live in a record.
type headerLayout struct {
	columns   []string // normalized names excluding embedding
	sources   []int    // record position of each entry in columns
	title     int
	features  int
	authors   int
	embedding int
}

func parseHeader(header []string) (headerLayout, error) {
	layout := headerLayout{title: -1, features: -1, authors: -1, embedding: -1}
	seen := make(map[string]bool, len(header))

	for i, raw := range header {
		if i == 0 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen[name] {
			return layout, formatErr(1, "duplicate column %q", name)
		}
		seen[name] = true

		switch name {
		case ColumnEmbedding:
			layout.embedding = i
			continue
		case ColumnTitle:
			layout.title = i
		case ColumnFeatures:
			layout.features = i
		case ColumnAuthors:
			layout.authors = i
		}
		layout.columns = append(layout.columns, name)
		layout.sources = append(layout.sources, i)
	}

	var missing []string
	if layout.title < 0 {
		missing = append(missing, ColumnTitle)
	}
	if layout.features < 0 {
		missing = append(missing, ColumnFeatures)
	}
	if len(missing) > 0 {
		return layout, formatErr(1, "missing required column(s): %s", strings.Join(missing, ", "))
	}
	return layout, nil
}

func canonicalText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func csvErr(err error) *DataFormatError {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DataFormatError{Line: pe.Line, Msg: "malformed CSV", Err: pe.Err}
	}
	return &DataFormatError{Msg: "read catalog source", Err: err}
}
