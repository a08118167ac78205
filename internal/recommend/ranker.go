// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"github.com/tomtom215/bookwise/internal/embedding"
)

// Ranked is one scored catalog row.
type Ranked struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Rank scores every row of m against query by cosine similarity and
// returns the topN best, highest first. Equal scores are ordered by
// ascending index. topN is clamped to [0, m.Len()]. The matrix is not
// modified.
func Rank(query []float64, m *embedding.Matrix, topN int) []Ranked {
	if m == nil {
		return []Ranked{}
	}
	topN = max(0, min(topN, m.Len()))
	if topN == 0 {
		return []Ranked{}
	}

	qNorm := embedding.Norm(query)
	best := newTopK(topN)
	for i := 0; i < m.Len(); i++ {
		best.offer(Ranked{Index: i, Score: cosine(query, qNorm, m.Row(i), m.RowNorm(i))})
	}
	return best.sorted()
}

// cosine returns the cosine similarity of a and b given their norms. It is
// 0 when either vector has no magnitude or the widths differ.
func cosine(a []float64, aNorm float64, b []float64, bNorm float64) float64 {
	if len(a) != len(b) || aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (aNorm * bNorm)
}
