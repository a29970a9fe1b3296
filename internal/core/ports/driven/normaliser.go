package driven

import "github.com/gridiron-labs/huddle-cli/internal/core/domain"

// TableNormaliser turns one raw stat table into player records. Each
// category (combine, injury, rushing) has its own implementation; they
// share the rule that a row missing its player identity is skipped, not
// fatal, while a table missing its player column is.
type TableNormaliser interface {
	// Normalise parses the table into per-player records.
	Normalise(table domain.RawTable) ([]domain.PlayerRecord, NormaliseStats, error)
}

// NormaliseStats counts what happened to the rows of one table.
type NormaliseStats struct {
	// RowsSeen is the total number of data rows in the table.
	RowsSeen int

	// RowsSkipped counts rows dropped for a missing identity or because no
	// field could be parsed.
	RowsSkipped int

	// Duplicates counts rows that replaced an earlier row for the same
	// player (most-recent-record-wins).
	Duplicates int
}
