// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package validation

import (
	"strings"
	"testing"
)

type queryRequest struct {
	Query string `json:"query" validate:"required,notblank,max=20"`
	TopN  *int   `json:"top_n" validate:"omitempty,gte=0,lte=100"`
	Mode  string `json:"mode,omitempty" validate:"omitempty,oneof=table json"`
}

func intPtr(v int) *int { return &v }

func TestValidator_Singleton(t *testing.T) {
	t.Parallel()

	if v := Validator(); v == nil || v != Validator() {
		t.Error("Validator() should return the same non-nil instance")
	}
}

func TestStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     queryRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "valid", input: queryRequest{Query: "space opera", TopN: intPtr(5)}},
		{name: "valid without top_n", input: queryRequest{Query: "romance"}},
		{name: "zero top_n allowed", input: queryRequest{Query: "romance", TopN: intPtr(0)}},
		{name: "missing query", input: queryRequest{}, wantField: "query", wantTag: "required", wantMsg: "query is required"},
		{name: "blank query", input: queryRequest{Query: " \t "}, wantField: "query", wantTag: "notblank", wantMsg: "query must not be blank"},
		{name: "query too long", input: queryRequest{Query: strings.Repeat("x", 21)}, wantField: "query", wantTag: "max", wantMsg: "query must be at most 20 bytes"},
		{name: "negative top_n", input: queryRequest{Query: "a", TopN: intPtr(-1)}, wantField: "top_n", wantTag: "gte", wantMsg: "top_n must be at least 0"},
		{name: "top_n too large", input: queryRequest{Query: "a", TopN: intPtr(101)}, wantField: "top_n", wantTag: "lte", wantMsg: "top_n must be at most 100"},
		{name: "bad mode", input: queryRequest{Query: "a", Mode: "xml"}, wantField: "mode", wantTag: "oneof", wantMsg: "mode must be one of: table json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := Struct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected validation error: %v", verr)
				}
				return
			}
			if verr == nil || len(verr.Fields) != 1 {
				t.Fatalf("want exactly one field error, got %v", verr)
			}
			got := verr.Fields[0]
			if got.Field != tt.wantField || got.Tag != tt.wantTag {
				t.Errorf("got field=%q tag=%q, want field=%q tag=%q", got.Field, got.Tag, tt.wantField, tt.wantTag)
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestError_Multiple(t *testing.T) {
	t.Parallel()

	verr := Struct(&queryRequest{TopN: intPtr(-3), Mode: "xml"})
	if verr == nil || len(verr.Fields) != 3 {
		t.Fatalf("want 3 field errors, got %v", verr)
	}
	msg := verr.Error()
	for _, want := range []string{"query: query is required", "top_n: top_n must be at least 0", "mode: "} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	if got := (&Error{}).Error(); got != "validation failed" {
		t.Errorf("empty Error() = %q", got)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	t.Parallel()

	verr := Struct(42)
	if verr == nil || verr.Fields[0].Field != "body" {
		t.Errorf("Struct(42) = %v", verr)
	}
}
