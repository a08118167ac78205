// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultHashDimension matches the width of the MiniLM sentence models.
const DefaultHashDimension = 384

// Hash is a deterministic bag-of-words embedder. Each token is hashed with
// FNV-1a into one of dim buckets and the count vector is L2-normalized.
// It needs no network and is used for development, tests, and the
// offline CLI; texts sharing words score higher, which is all the ranking
// pipeline needs to be exercised end to end.
type Hash struct {
	name string
	dim  int
}

// NewHash returns a Hash embedder of the given width. A non-positive width
// selects DefaultHashDimension.
func NewHash(name string, dim int) *Hash {
	if dim <= 0 {
		dim = DefaultHashDimension
	}
	if name == "" {
		name = "hash"
	}
	return &Hash{name: name, dim: dim}
}

// Name returns the embedder name.
func (h *Hash) Name() string { return h.name }

// Dimension returns the vector width.
func (h *Hash) Dimension() int { return h.dim }

// Embed hashes every text. It only fails when ctx is already done.
func (h *Hash) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = h.vector(text)
	}
	return out, nil
}

func (h *Hash) vector(text string) []float64 {
	vec := make([]float64, h.dim)
	for _, tok := range Tokenize(text) {
		f := fnv.New32a()
		_, _ = f.Write([]byte(tok))
		vec[f.Sum32()%uint32(h.dim)] += 1 //nolint:gosec // dim is positive and small
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	if sumSq > 0 {
		inv := 1 / math.Sqrt(sumSq)
		for j := range vec {
			vec[j] *= inv
		}
	}
	return vec
}

// Tokenize folds text to NFKC lower case and splits it into letter/digit
// runs, dropping English stop words.
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if !stopWords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true, "if": true,
	"of": true, "at": true, "by": true, "for": true, "with": true, "about": true, "to": true,
	"from": true, "in": true, "on": true, "into": true, "over": true, "under": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true, "your": true,
	"he": true, "him": true, "his": true, "she": true, "her": true, "it": true, "its": true,
	"they": true, "them": true, "their": true, "this": true, "that": true, "these": true, "those": true,
	"what": true, "which": true, "who": true, "whom": true, "so": true, "than": true, "too": true,
	"very": true, "can": true, "will": true, "just": true, "s": true, "t": true,
	"book": true, "books": true, "like": true, "want": true, "something": true,
}
