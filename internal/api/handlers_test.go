// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookwise/internal/catalog"
	"github.com/tomtom215/bookwise/internal/embedding"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// fakeRecommender records calls and returns canned results.
type fakeRecommender struct {
	mu      sync.Mutex
	queries []string
	topNs   []int
	recs    []recommend.Recommendation
	err     error
}

func (f *fakeRecommender) Recommend(_ context.Context, query string, topN int) ([]recommend.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.topNs = append(f.topNs, topN)
	if f.err != nil {
		return nil, f.err
	}
	n := min(max(topN, 0), len(f.recs))
	return f.recs[:n], nil
}

func (f *fakeRecommender) DefaultTopN() int  { return 5 }
func (f *fakeRecommender) Len() int          { return len(f.recs) }
func (f *fakeRecommender) Dimension() int    { return 384 }
func (f *fakeRecommender) ModelName() string { return "fake" }

func (f *fakeRecommender) lastTopN() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.topNs[len(f.topNs)-1]
}

func (f *fakeRecommender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func sampleRecs() []recommend.Recommendation {
	return []recommend.Recommendation{
		{Index: 0, Title: "Dune", Authors: "Frank Herbert", Description: "By Frank Herbert", Score: 0.9},
		{Index: 2, Title: "Neuromancer", Authors: "William Gibson", Description: "By William Gibson", Score: 0.5},
		{Index: 1, Title: "Emma", Description: "By Unknown", Score: 0.1},
	}
}

func newTestServer(t *testing.T, svc Recommender, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return NewRouter(NewHandler(svc, time.Second), NewChiMiddleware(mwCfg)).SetupChi()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestRecommend_Success(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/recommend", "/api/v1/recommend"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			fake := &fakeRecommender{recs: sampleRecs()}
			h := newTestServer(t, fake, nil)

			rec := do(t, h, http.MethodPost, path, `{"query":"desert planet","top_n":2}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp RecommendResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if len(resp.Recommendations) != 2 {
				t.Fatalf("got %d recommendations", len(resp.Recommendations))
			}
			first := resp.Recommendations[0]
			if first.Title != "Dune" || first.Description != "By Frank Herbert" || first.Score != 0.9 {
				t.Errorf("first = %+v", first)
			}
			if fake.lastTopN() != 2 {
				t.Errorf("top_n passed = %d", fake.lastTopN())
			}
		})
	}
}

func TestRecommend_DefaultAndZeroTopN(t *testing.T) {
	t.Parallel()

	fake := &fakeRecommender{recs: sampleRecs()}
	h := newTestServer(t, fake, nil)

	rec := do(t, h, http.MethodPost, "/recommend", `{"query":"anything"}`)
	if rec.Code != http.StatusOK || fake.lastTopN() != 5 {
		t.Errorf("omitted top_n: status %d, top_n %d", rec.Code, fake.lastTopN())
	}

	rec = do(t, h, http.MethodPost, "/recommend", `{"query":"anything","top_n":0}`)
	if rec.Code != http.StatusOK || fake.lastTopN() != 0 {
		t.Fatalf("zero top_n: status %d, top_n %d", rec.Code, fake.lastTopN())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"recommendations":[]}` {
		t.Errorf("body = %s, want an empty array", got)
	}
}

func TestRecommend_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty query", `{"query":""}`, http.StatusBadRequest},
		{"blank query", `{"query":"   "}`, http.StatusBadRequest},
		{"missing query", `{"top_n":3}`, http.StatusBadRequest},
		{"negative top_n", `{"query":"x","top_n":-1}`, http.StatusBadRequest},
		{"unknown field", `{"query":"x","limit":3}`, http.StatusBadRequest},
		{"malformed json", `{"query":`, http.StatusBadRequest},
		{"wrong type", `{"query":42}`, http.StatusBadRequest},
		{"trailing data", `{"query":"x"} {"query":"y"}`, http.StatusBadRequest},
		{"too large", `{"query":"` + strings.Repeat("a", DefaultMaxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeRecommender{recs: sampleRecs()}
			h := newTestServer(t, fake, nil)

			rec := do(t, h, http.MethodPost, "/recommend", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			detail := decodeError(t, rec)
			if detail.Kind != recommend.KindInvalidQuery {
				t.Errorf("kind = %q", detail.Kind)
			}
			if detail.Message == "" {
				t.Error("message must not be empty")
			}
			if detail.RequestID == "" || detail.RequestID != rec.Header().Get("X-Request-ID") {
				t.Errorf("request_id %q must match header %q", detail.RequestID, rec.Header().Get("X-Request-ID"))
			}
			if fake.calls() != 0 {
				t.Error("rejected requests must not reach the service")
			}
		})
	}
}

func TestRecommend_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		kind   recommend.Kind
	}{
		{"invalid query", recommend.ErrInvalidQuery, http.StatusBadRequest, recommend.KindInvalidQuery},
		{"model failure", &embedding.ModelError{Provider: "p", Op: "embed query", Err: errors.New("secret upstream detail")}, http.StatusBadGateway, recommend.KindEmbeddingModel},
		{"breaker open", &embedding.ModelError{Provider: "p", Op: "embed", Unavailable: true}, http.StatusServiceUnavailable, recommend.KindEmbeddingModel},
		{"timeout", &embedding.ModelError{Provider: "p", Op: "embed query", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, recommend.KindEmbeddingModel},
		{"data format", &catalog.DataFormatError{Msg: "bad"}, http.StatusInternalServerError, recommend.KindDataFormat},
		{"internal", errors.New("boom"), http.StatusInternalServerError, recommend.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(t, &fakeRecommender{err: tt.err}, nil)

			rec := do(t, h, http.MethodPost, "/api/v1/recommend", `{"query":"x"}`)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			detail := decodeError(t, rec)
			if detail.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", detail.Kind, tt.kind)
			}
			if strings.Contains(detail.Message, "secret upstream detail") {
				t.Error("upstream error details must not leak to clients")
			}
		})
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{}, nil)

	rec := do(t, h, http.MethodGet, "/recommend", "")
	if rec.Code != http.StatusMethodNotAllowed || decodeError(t, rec).Kind != KindNotAllowed {
		t.Errorf("GET /recommend = %d %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Kind != KindNotFound {
		t.Errorf("GET /nope = %d %s", rec.Code, rec.Body)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{recs: sampleRecs()}, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"alive"`) {
		t.Errorf("live = %d %s", rec.Code, rec.Body)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/health/ready", "")
	var status HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || status.Status != "ready" || status.CatalogItems != 3 || status.Dimension != 384 || status.Model != "fake" {
		t.Errorf("ready = %d %+v", rec.Code, status)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing on health endpoints")
	}

	notReady := newTestServer(t, nil, nil)
	rec = do(t, notReady, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready without service = %d", rec.Code)
	}
	rec = do(t, notReady, http.MethodPost, "/recommend", `{"query":"x"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("recommend without service = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{recs: sampleRecs()}, nil)
	do(t, h, http.MethodPost, "/recommend", `{"query":"x"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bookwise_api_requests_total") {
		t.Error("metrics output missing bookwise_api_requests_total")
	}
}

func TestRecommend_EndToEnd(t *testing.T) {
	t.Parallel()

	src := "name,authors,combine_feat\n" +
		"Dune,Frank Herbert,science fiction desert planet spice empire\n" +
		"Emma,Jane Austen,regency romance matchmaking village\n" +
		"Neuromancer,,cyberpunk hacker artificial intelligence\n"
	cat, err := catalog.Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	model := embedding.NewHash("hash", 128)
	m, err := embedding.NewStore("").Ensure(context.Background(), cat, model)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := recommend.NewService(cat, m, model, recommend.Options{})
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, svc, nil)

	rec := do(t, h, http.MethodPost, "/recommend", `{"query":"a desert planet and spice","top_n":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var resp RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations) != 3 {
		t.Fatalf("top_n=10 over 3 items returned %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Title != "Dune" {
		t.Errorf("best match = %q, want Dune", resp.Recommendations[0].Title)
	}
	for _, r := range resp.Recommendations {
		if r.Title == "Neuromancer" && r.Description != "By Unknown" {
			t.Errorf("Neuromancer description = %q", r.Description)
		}
	}
}
