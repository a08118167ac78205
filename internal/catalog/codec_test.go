// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDecodeVector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cell    string
		want    []float64
		wantErr bool
	}{
		{"json array", "[0.1, -2, 3e-4]", []float64{0.1, -2, 3e-4}, false},
		{"numpy repr", "[ 0.1  -2.\n 3e-04]", []float64{0.1, -2, 3e-4}, false},
		{"surrounding space", "  [1,2]  ", []float64{1, 2}, false},
		{"empty cell", "   ", nil, false},
		{"empty array", "[]", nil, true},
		{"not a list", "0.1,0.2", nil, true},
		{"garbage element", "[0.1, abc]", nil, true},
		{"nan", "[0.1, nan]", nil, true},
		{"infinity", "[inf, 1]", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeVector(tt.cell)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeVector(%q) error = %v, wantErr %v", tt.cell, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeVector(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestEncodeVector(t *testing.T) {
	t.Parallel()

	v := []float64{0.1, -2, 1.0 / 3, 1e-300}
	cell, err := EncodeVector(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeVector(cell)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, v) {
		t.Errorf("%s decoded to %v, want exactly %v", cell, back, v)
	}

	if got, _ := EncodeVector([]float64{1, 0.5}); got != "[1,0.5]" {
		t.Errorf("EncodeVector = %q", got)
	}

	if _, err := EncodeVector([]float64{1, math.NaN()}); !errors.Is(err, errNonFinite) {
		t.Errorf("NaN: err = %v", err)
	}
}
