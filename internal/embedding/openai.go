// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookwise/internal/logging"
)

// knownDimensions lists default output widths for hosted models.
var knownDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"all-MiniLM-L6-v2":       384,
	"all-mpnet-base-v2":      768,
}

// OpenAIConfig configures the OpenAI-compatible embedding provider.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // empty uses api.openai.com
	Model   string

	// Dimensions overrides the model's width. For text-embedding-3 models it
	// is also sent to the API to shorten the vectors.
	Dimensions int

	BatchSize   int
	Concurrency int
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   float64 // requests per second, 0 = unlimited
}

// OpenAI embeds texts through the /v1/embeddings endpoint of OpenAI or any
// compatible server. Large inputs are split into batches that run
// concurrently; results are reassembled in input order.
type OpenAI struct {
	client  *openai.Client
	cfg     OpenAIConfig
	dim     int
	limiter *rate.Limiter
}

// NewOpenAI builds the provider. The model's width must be known, either
// from cfg.Dimensions or the built-in table.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.Model == "" {
		return nil, errors.New("openai embedder: model is required")
	}
	dim := cfg.Dimensions
	if dim <= 0 {
		dim = knownDimensions[cfg.Model]
	}
	if dim <= 0 {
		return nil, fmt.Errorf("openai embedder: unknown width for model %q, set dimensions", cfg.Model)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		dim:     dim,
		limiter: limiter,
	}, nil
}

// Name returns "openai:<model>".
func (o *OpenAI) Name() string { return "openai:" + o.cfg.Model }

// Dimension returns the configured or known width.
func (o *OpenAI) Dimension() int { return o.dim }

// Embed sends texts in batches of BatchSize with at most Concurrency
// requests in flight.
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)

	for start := 0; start < len(texts); start += o.cfg.BatchSize {
		end := min(start+o.cfg.BatchSize, len(texts))
		g.Go(func() error {
			vecs, err := o.embedBatch(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("batch %d-%d: %w", start, end, err)
			}
			copy(out[start:end], vecs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// embedBatch performs one API request with retries on transient failures.
func (o *OpenAI) embedBatch(ctx context.Context, batch []string) ([][]float64, error) {
	req := openai.EmbeddingRequestStrings{
		Input: batch,
		Model: openai.EmbeddingModel(o.cfg.Model),
	}
	if o.cfg.Dimensions > 0 && strings.HasPrefix(o.cfg.Model, "text-embedding-3") {
		req.Dimensions = o.cfg.Dimensions
	}

	backoff := retry.WithJitterPercent(10, retry.NewExponential(o.cfg.RetryDelay))
	backoff = retry.WithMaxRetries(uint64(max(o.cfg.MaxRetries, 0)), backoff) //nolint:gosec // clamped non-negative

	var result [][]float64
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := o.limiter.Wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()

		resp, err := o.client.CreateEmbeddings(callCtx, req)
		if err != nil {
			if isRetryable(err) {
				logging.Debug().Err(err).Int("attempt", attempt).Int("texts", len(batch)).Msg("embedding request failed, retrying")
				return retry.RetryableError(err)
			}
			return err
		}

		vecs, err := collectEmbeddings(resp, len(batch))
		if err != nil {
			return err
		}
		result = vecs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// collectEmbeddings converts the response to float64 rows ordered by Index.
func collectEmbeddings(resp openai.EmbeddingResponse, want int) ([][]float64, error) {
	if len(resp.Data) != want {
		return nil, fmt.Errorf("response has %d embeddings for %d inputs", len(resp.Data), want)
	}
	out := make([][]float64, want)
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= want || out[d.Index] != nil {
			return nil, fmt.Errorf("response has invalid or repeated index %d", d.Index)
		}
		vec := make([]float64, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float64(v)
		}
		out[d.Index] = vec
	}
	return out, nil
}

// isRetryable reports whether err is worth another attempt: rate limiting,
// server errors, timeouts and transport failures are; client errors such as
// a bad key or unknown model are not.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= http.StatusInternalServerError
}
