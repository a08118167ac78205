// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

type embeddingsRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingsDatum struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// fakeEmbeddingsServer answers /embeddings with vectors whose first
// component is the input's length, in reverse index order.
type fakeEmbeddingsServer struct {
	dim int

	mu       sync.Mutex
	requests []embeddingsRequest
	// failures holds status codes returned, in order, before succeeding.
	failures []int
}

func (f *fakeEmbeddingsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/embeddings" {
		http.NotFound(w, r)
		return
	}
	var req embeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	var status int
	if len(f.failures) > 0 {
		status, f.failures = f.failures[0], f.failures[1:]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"simulated failure","type":"server_error"}}`))
		return
	}

	data := make([]embeddingsDatum, 0, len(req.Input))
	for i := len(req.Input) - 1; i >= 0; i-- {
		vec := make([]float32, f.dim)
		vec[0] = float32(len(req.Input[i]))
		data = append(data, embeddingsDatum{Object: "embedding", Embedding: vec, Index: i})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"data":   data,
		"model":  req.Model,
		"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
	})
}

func (f *fakeEmbeddingsServer) Requests() []embeddingsRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]embeddingsRequest(nil), f.requests...)
}

func newTestOpenAI(t *testing.T, srv *httptest.Server, cfg OpenAIConfig) *OpenAI {
	t.Helper()
	cfg.BaseURL = srv.URL
	cfg.APIKey = "test-key"
	if cfg.Model == "" {
		cfg.Model = "all-MiniLM-L6-v2"
	}
	cfg.RetryDelay = time.Millisecond
	o, err := NewOpenAI(cfg)
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	return o
}

func TestOpenAI_BatchesAndOrders(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbeddingsServer{dim: 384}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{BatchSize: 2, Concurrency: 2})
	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	vecs, err := o.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if err := CheckVectors(o, vecs, len(texts)); err != nil {
		t.Fatal(err)
	}
	for i, v := range vecs {
		if int(v[0]) != len(texts[i]) {
			t.Errorf("vector %d has length marker %v, want %d", i, v[0], len(texts[i]))
		}
	}
	if n := len(fake.Requests()); n != 3 {
		t.Errorf("requests = %d, want 3 batches", n)
	}
	if o.Name() != "openai:all-MiniLM-L6-v2" {
		t.Errorf("Name() = %q", o.Name())
	}
}

func TestOpenAI_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbeddingsServer{dim: 384, failures: []int{http.StatusInternalServerError, http.StatusTooManyRequests}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{MaxRetries: 3})
	if _, err := o.Embed(context.Background(), []string{"dune"}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if n := len(fake.Requests()); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}
}

func TestOpenAI_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbeddingsServer{dim: 384, failures: []int{http.StatusUnauthorized}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{MaxRetries: 3})
	if _, err := o.Embed(context.Background(), []string{"dune"}); err == nil {
		t.Fatal("expected error")
	}
	if n := len(fake.Requests()); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestOpenAI_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbeddingsServer{dim: 384, failures: []int{502, 502, 502, 502}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{MaxRetries: 1})
	if _, err := o.Embed(context.Background(), []string{"dune"}); err == nil {
		t.Fatal("expected error")
	}
	if n := len(fake.Requests()); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestOpenAI_SendsDimensionsForV3Models(t *testing.T) {
	t.Parallel()

	fake := &fakeEmbeddingsServer{dim: 256}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{Model: "text-embedding-3-small", Dimensions: 256})
	if o.Dimension() != 256 {
		t.Fatalf("Dimension() = %d", o.Dimension())
	}
	if _, err := o.Embed(context.Background(), []string{"x"}); err != nil {
		t.Fatal(err)
	}
	if got := fake.Requests()[0].Dimensions; got != 256 {
		t.Errorf("dimensions sent = %d, want 256", got)
	}
}

func TestNewOpenAI_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAI(OpenAIConfig{}); err == nil {
		t.Error("missing model must fail")
	}
	if _, err := NewOpenAI(OpenAIConfig{Model: "my-local-model"}); err == nil {
		t.Error("unknown width must fail")
	}
	o, err := NewOpenAI(OpenAIConfig{Model: "my-local-model", Dimensions: 12})
	if err != nil || o.Dimension() != 12 {
		t.Errorf("explicit width: %v, %v", o, err)
	}
}

func TestOpenAI_EmptyInput(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
	defer srv.Close()

	o := newTestOpenAI(t, srv, OpenAIConfig{})
	vecs, err := o.Embed(context.Background(), nil)
	if err != nil || len(vecs) != 0 {
		t.Errorf("Embed(nil) = %v, %v", vecs, err)
	}
	if hits.Load() != 0 {
		t.Error("no request expected for empty input")
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, false},
		{"transport", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("%s: isRetryable = %v, want %v", tt.name, got, tt.want)
		}
	}
	for code, want := range map[int]bool{400: false, 401: false, 404: false, 408: true, 429: true, 500: true, 503: true} {
		if got := retryableStatus(code); got != want {
			t.Errorf("retryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}
