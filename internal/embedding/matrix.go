// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"fmt"
	"math"
	"slices"
)

// Matrix is the immutable catalog embedding table: row i belongs to catalog
// item i. Row norms are precomputed for cosine scoring.
type Matrix struct {
	rows  [][]float64
	norms []float64
	dim   int
}

// NewMatrix copies rows into a Matrix. All rows must share one non-zero
// width. An empty row set yields an empty matrix of width dim.
func NewMatrix(rows [][]float64, dim int) (*Matrix, error) {
	m := &Matrix{
		rows:  make([][]float64, len(rows)),
		norms: make([]float64, len(rows)),
		dim:   dim,
	}
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has %d dimensions, want %d", i, len(row), dim)
		}
		m.rows[i] = slices.Clone(row)
		m.norms[i] = Norm(row)
	}
	return m, nil
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

// Dim returns the row width.
func (m *Matrix) Dim() int { return m.dim }

// Row returns row i. The slice is shared and must not be modified.
func (m *Matrix) Row(i int) []float64 { return m.rows[i] }

// RowNorm returns the Euclidean norm of row i.
func (m *Matrix) RowNorm(i int) float64 { return m.norms[i] }

// Rows returns a deep copy of all rows.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
