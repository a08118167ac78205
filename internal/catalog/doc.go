// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package catalog loads the book catalog and persists it together with its
embedding column.

A source CSV needs a name column (the title) and a combine_feat column
(the text that gets embedded). Every other column, authors included, is
carried through unchanged and in order:

	name,authors,combine_feat
	Dune,Frank Herbert,"desert planet politics spice"

Load canonicalizes the table (trimmed lower-case headers, blank rows
dropped, duplicates removed, contiguous indices). The result is immutable;
WithEmbeddings returns a new Catalog rather than changing the receiver.

WriteFile publishes the catalog with an embedding column of JSON arrays
via write-to-temp, fsync and rename, so a crash never leaves a half-written
table at the destination.

Structural problems are reported as *DataFormatError.
*/
package catalog
