// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var errNonFinite = errors.New("non-finite component")

// EncodeVector renders v as a JSON array using the shortest representation
// that parses back to the same float64.
func EncodeVector(v []float64) (string, error) {
	buf := make([]byte, 0, len(v)*12+2)
	buf = append(buf, '[')
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", fmt.Errorf("component %d: %w", i, errNonFinite)
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	}
	buf = append(buf, ']')
	return string(buf), nil
}

// DecodeVector parses an embedding cell. It accepts a JSON array of numbers,
// which covers Python's list repr, and falls back to the whitespace
// separated form numpy prints. An empty cell decodes to nil with no error.
func DecodeVector(cell string) ([]float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}

	var v []float64
	if err := json.Unmarshal([]byte(cell), &v); err != nil {
		var fallbackErr error
		v, fallbackErr = decodeLoose(cell)
		if fallbackErr != nil {
			return nil, fmt.Errorf("decode embedding: %w", err)
		}
	}

	if len(v) == 0 {
		return nil, errors.New("decode embedding: empty vector")
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("decode embedding: component %d: %w", i, errNonFinite)
		}
	}
	return v, nil
}

func decodeLoose(cell string) ([]float64, error) {
	if !strings.HasPrefix(cell, "[") || !strings.HasSuffix(cell, "]") {
		return nil, errors.New("not a bracketed list")
	}
	fields := strings.FieldsFunc(cell[1:len(cell)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	v := make([]float64, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		v = append(v, x)
	}
	return v, nil
}
