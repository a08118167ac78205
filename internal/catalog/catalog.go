// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"fmt"
	"slices"
)

// Canonical column names after header normalization.
const (
	ColumnTitle     = "name"
	ColumnFeatures  = "combine_feat"
	ColumnAuthors   = "authors"
	ColumnEmbedding = "embedding"
)

// Item is one canonical catalog row. Index is its stable identity and
// equals its position in the catalog.
type Item struct {
	Index    int
	Title    string
	Authors  string
	Features string

	// Values holds every non-embedding cell, aligned with Catalog.Columns.
	Values []string

	// Embedding is nil when the row has no usable persisted vector.
	Embedding []float64
}

// Catalog is an ordered, immutable list of items. Methods never modify the
// receiver; WithEmbeddings returns a new Catalog.
type Catalog struct {
	columns []string
	items   []Item
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Columns returns the normalized passthrough column names, excluding the
// embedding column.
func (c *Catalog) Columns() []string {
	return slices.Clone(c.columns)
}

// Item returns the item at index i. It panics if i is out of range.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Items returns all items in catalog order. The slice is shared; callers
// must treat it as read-only.
func (c *Catalog) Items() []Item {
	return c.items
}

// Texts returns the feature text of every item in catalog order.
func (c *Catalog) Texts() []string {
	texts := make([]string, len(c.items))
	for i := range c.items {
		texts[i] = c.items[i].Features
	}
	return texts
}

// Missing returns the indices of items without an embedding of width dim.
func (c *Catalog) Missing(dim int) []int {
	var missing []int
	for i := range c.items {
		if len(c.items[i].Embedding) != dim {
			missing = append(missing, i)
		}
	}
	return missing
}

// WithEmbeddings returns a copy of the catalog whose item i carries rows[i].
// Every row must be non-empty and share one width.
func (c *Catalog) WithEmbeddings(rows [][]float64) (*Catalog, error) {
	if len(rows) != len(c.items) {
		return nil, fmt.Errorf("embedding rows = %d, catalog items = %d", len(rows), len(c.items))
	}

	dim := -1
	items := make([]Item, len(c.items))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("item %d: empty embedding", i)
		}
		if dim == -1 {
			dim = len(row)
		} else if len(row) != dim {
			return nil, fmt.Errorf("item %d: embedding width %d, want %d", i, len(row), dim)
		}
		items[i] = c.items[i]
		items[i].Embedding = slices.Clone(row)
	}

	return &Catalog{columns: c.columns, items: items}, nil
}

// WithoutEmbeddings returns a copy of the catalog with every embedding
// cleared, so that all items are embedded again.
func (c *Catalog) WithoutEmbeddings() *Catalog {
	items := make([]Item, len(c.items))
	for i := range c.items {
		items[i] = c.items[i]
		items[i].Embedding = nil
	}
	return &Catalog{columns: c.columns, items: items}
}
