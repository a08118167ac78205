// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package embedding

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/bookwise/internal/config"
)

func TestCached_EmbedsOnlyMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	inner := newCounting(NewHash("hash", 8))

	c, err := OpenCached(dir, inner)
	if err != nil {
		t.Fatalf("OpenCached() error = %v", err)
	}

	first, err := c.Embed(ctx, []string{"dune", "emma"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Embed(ctx, []string{"emma", "ulysses", "dune"})
	if err != nil {
		t.Fatal(err)
	}

	calls := inner.Calls()
	if len(calls) != 2 || !reflect.DeepEqual(calls[1], []string{"ulysses"}) {
		t.Fatalf("calls = %v, want second call for [ulysses] only", calls)
	}
	if !reflect.DeepEqual(first[0], second[2]) || !reflect.DeepEqual(first[1], second[0]) {
		t.Error("cached vectors must match the originals")
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	// The cache survives a restart.
	reopened, err := OpenCached(dir, inner)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if _, err := reopened.Embed(ctx, []string{"dune", "emma", "ulysses"}); err != nil {
		t.Fatal(err)
	}
	if n := len(inner.Calls()); n != 2 {
		t.Errorf("calls after reopen = %d, want 2", n)
	}
}

func TestCached_KeyedByModel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	a, err := OpenCached(dir, NewHash("model-a", 8))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Embed(ctx, []string{"dune"}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	inner := newCounting(NewHash("model-b", 8))
	b, err := OpenCached(dir, inner)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if _, err := b.Embed(ctx, []string{"dune"}); err != nil {
		t.Fatal(err)
	}
	if n := len(inner.Calls()); n != 1 {
		t.Errorf("another model must not reuse cached vectors, calls = %d", n)
	}
}

func TestCached_PropagatesErrors(t *testing.T) {
	t.Parallel()

	inner := newCounting(NewHash("hash", 8))
	inner.err = errors.New("boom")
	c, err := OpenCached(t.TempDir(), inner)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Embed(context.Background(), []string{"x"}); err == nil {
		t.Fatal("expected error")
	}
	inner.err = nil
	if _, err := c.Embed(context.Background(), []string{"x"}); err != nil {
		t.Fatal(err)
	}
	if n := len(inner.Calls()); n != 2 {
		t.Errorf("failed call must not be cached, calls = %d", n)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("hash without cache", func(t *testing.T) {
		t.Parallel()
		m, err := New(config.EmbeddingConfig{Provider: "hash", Dimensions: 16})
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if m.Query.Dimension() != 16 || m.Query != m.Catalog {
			t.Errorf("models = %+v", m)
		}
	})

	t.Run("hash with cache", func(t *testing.T) {
		t.Parallel()
		m, err := New(config.EmbeddingConfig{Provider: "hash", Dimensions: 16, CacheDir: t.TempDir()})
		if err != nil {
			t.Fatal(err)
		}
		defer m.Close()
		if _, ok := m.Catalog.(*Cached); !ok {
			t.Errorf("catalog model = %T, want *Cached", m.Catalog)
		}
		if _, ok := m.Query.(*Cached); ok {
			t.Error("queries must bypass the cache")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := New(config.EmbeddingConfig{Provider: "word2vec"})
		var me *ModelError
		if !errors.As(err, &me) {
			t.Errorf("err = %v, want *ModelError", err)
		}
	})

	t.Run("openai with unknown model width", func(t *testing.T) {
		t.Parallel()
		_, err := New(config.EmbeddingConfig{Provider: "openai", Model: "mystery", APIKey: "k"})
		var me *ModelError
		if !errors.As(err, &me) {
			t.Errorf("err = %v, want *ModelError", err)
		}
	})
}
