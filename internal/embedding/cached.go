// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/metrics"
)

const cacheKeyPrefix = "emb:"

// Cached memoizes vectors in a BadgerDB keyed by model name and text, so a
// catalog rebuild (or an edited catalog) only pays for texts the model has
// never seen. Misses from one call are embedded in a single call to the
// wrapped model.
//
// Cached is meant for the catalog batch. Queries go straight to the model.
type Cached struct {
	next Embedder
	db   *badger.DB
}

// OpenCached opens (or creates) the cache directory and wraps next.
func OpenCached(dir string, next Embedder) (*Cached, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for embedding cache: %w", err)
	}
	return &Cached{next: next, db: db}, nil
}

// Name returns the wrapped provider's name.
func (c *Cached) Name() string { return c.next.Name() }

// Dimension returns the wrapped provider's width.
func (c *Cached) Dimension() int { return c.next.Dimension() }

// Close releases the database.
func (c *Cached) Close() error {
	return c.db.Close()
}

// CollectGarbage rewrites value log files until badger reports nothing left
// to reclaim at discardRatio.
func (c *Cached) CollectGarbage(discardRatio float64) error {
	for {
		err := c.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("embedding cache gc: %w", err)
		}
	}
}

// Embed serves cached vectors and embeds the rest in one call.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	keys := make([][]byte, len(texts))
	for i, t := range texts {
		keys[i] = c.key(t)
	}

	dim := c.Dimension()
	err := c.db.View(func(txn *badger.Txn) error {
		for i, key := range keys {
			item, err := txn.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get cached embedding: %w", err)
			}
			var vec []float64
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &vec)
			}); err != nil {
				logging.Warn().Err(err).Msg("discarding corrupt cached embedding")
				continue
			}
			if len(vec) == dim {
				out[i] = vec
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var missIdx []int
	var missTexts []string
	for i := range out {
		if out[i] == nil {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, texts[i])
		}
	}
	metrics.RecordEmbeddingCache(len(texts)-len(missIdx), len(missIdx))

	if len(missIdx) == 0 {
		return out, nil
	}

	vecs, err := c.next.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("model returned %d vectors for %d texts", len(vecs), len(missTexts))
	}

	for j, idx := range missIdx {
		out[idx] = vecs[j]
	}

	if err := c.store(missIdx, keys, vecs); err != nil {
		// The vectors are valid; a cache write failure only costs a future call.
		logging.Warn().Err(err).Int("texts", len(missIdx)).Msg("failed to write embedding cache")
	}
	return out, nil
}

func (c *Cached) store(idx []int, keys [][]byte, vecs [][]float64) error {
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()

	for j, i := range idx {
		if len(vecs[j]) != c.Dimension() {
			continue
		}
		data, err := json.Marshal(vecs[j])
		if err != nil {
			return fmt.Errorf("marshal embedding: %w", err)
		}
		if err := wb.Set(keys[i], data); err != nil {
			return fmt.Errorf("set cached embedding: %w", err)
		}
	}
	return wb.Flush()
}

func (c *Cached) key(text string) []byte {
	sum := sha256.Sum256([]byte(c.next.Name() + "|" + text))
	return []byte(cacheKeyPrefix + hex.EncodeToString(sum[:]))
}
