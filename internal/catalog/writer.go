// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes the catalog as CSV: the normalized passthrough columns
// followed by an embedding column. Items without a vector get an empty cell.
func (c *Catalog) Write(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append(c.Columns(), ColumnEmbedding)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for i := range c.items {
		item := &c.items[i]
		copy(record, item.Values)

		cell := ""
		if item.Embedding != nil {
			enc, err := EncodeVector(item.Embedding)
			if err != nil {
				return fmt.Errorf("item %d: %w", item.Index, err)
			}
			cell = enc
		}
		record[len(record)-1] = cell

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write item %d: %w", item.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the catalog to path atomically. The content goes to a
// temporary file in the same directory which is synced and then renamed
// over path, so readers see either the previous file or the complete new
// one.
func (c *Catalog) WriteFile(path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = c.Write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // catalog is not secret
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("publish catalog: %w", err)
	}
	return nil
}
