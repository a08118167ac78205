// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/bookwise/internal/embedding"
)

func mustMatrix(t testing.TB, rows [][]float64) *embedding.Matrix {
	t.Helper()
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	m, err := embedding.NewMatrix(rows, dim)
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	return m
}

func indices(ranked []Ranked) []int {
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Index
	}
	return out
}

func TestRank_Order(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, [][]float64{
		{0, 1},
		{1, 0},
		{1, 1},
		{-1, 0},
	})

	got := Rank([]float64{1, 0}, m, 4)
	if want := []int{1, 2, 0, 3}; !reflect.DeepEqual(indices(got), want) {
		t.Fatalf("order = %v, want %v", indices(got), want)
	}
	if math.Abs(got[0].Score-1) > 1e-12 || math.Abs(got[1].Score-1/math.Sqrt2) > 1e-12 {
		t.Errorf("scores = %v", got)
	}
	if got[3].Score != -1 {
		t.Errorf("opposite vector score = %v, want -1", got[3].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, got)
		}
	}
}

func TestRank_TiesByIndex(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, [][]float64{
		{0, 1},
		{2, 0},
		{0, 3},
		{5, 0},
	})

	got := Rank([]float64{1, 0}, m, 4)
	if want := []int{1, 3, 0, 2}; !reflect.DeepEqual(indices(got), want) {
		t.Errorf("order = %v, want %v", indices(got), want)
	}
}

func TestRank_TopNClamp(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})

	tests := []struct {
		topN int
		want int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		got := Rank([]float64{1, 1}, m, tt.topN)
		if len(got) != tt.want {
			t.Errorf("Rank(topN=%d) returned %d results, want %d", tt.topN, len(got), tt.want)
		}
		if got == nil {
			t.Errorf("Rank(topN=%d) returned nil, want empty slice", tt.topN)
		}
	}
}

func TestRank_ZeroAndMismatchedVectors(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, [][]float64{{1, 0}, {0, 0}, {0, 1}})

	got := Rank([]float64{0, 0}, m, 3)
	for _, r := range got {
		if r.Score != 0 {
			t.Errorf("zero query must score 0, got %v", got)
		}
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(indices(got), want) {
		t.Errorf("all-tie order = %v, want %v", indices(got), want)
	}

	got = Rank([]float64{1, 0}, m, 3)
	if got[1].Index != 1 || got[1].Score != 0 {
		t.Errorf("zero row must score 0 and precede the later tie: %v", got)
	}

	got = Rank([]float64{1, 0, 0}, m, 3)
	for _, r := range got {
		if r.Score != 0 {
			t.Errorf("mismatched width must score 0, got %v", got)
		}
	}
}

func TestRank_DeterministicAndReadOnly(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0.3, 0.1, 0.9}, {0.2, 0.8, 0.1}, {0.9, 0.9, 0.0}, {0.3, 0.1, 0.9}}
	m := mustMatrix(t, rows)
	before := m.Rows()
	query := []float64{0.5, 0.2, 0.4}

	first := Rank(query, m, 4)
	for i := 0; i < 20; i++ {
		if got := Rank(query, m, 4); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
	if !reflect.DeepEqual(m.Rows(), before) {
		t.Error("Rank modified the matrix")
	}
	// Rows 0 and 3 are identical, so their order is fixed by index.
	pos := map[int]int{}
	for p, r := range first {
		pos[r.Index] = p
	}
	if pos[0] > pos[3] {
		t.Errorf("duplicate rows out of index order: %v", first)
	}
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	m, err := embedding.NewMatrix(nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := Rank([]float64{1, 0, 0, 0}, m, 5); len(got) != 0 {
		t.Errorf("empty matrix returned %v", got)
	}
	if got := Rank([]float64{1}, nil, 5); len(got) != 0 {
		t.Errorf("nil matrix returned %v", got)
	}
}
