// Package normalisers turns raw source tables into canonical player
// records. Each subpackage handles one source table (combine, injury,
// rushing); this package holds the shared parsing helpers and the merge
// step that joins the three record sets on the canonical player name.
//
// Row-level problems are recoverable: a malformed row is skipped and
// counted, never fatal. A structurally unusable table (no identity column)
// is fatal because it cannot produce any records at all.
package normalisers
