// Package combine normalises the NFL combine measurables table.
package combine

import (
	"fmt"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers"
)

// Normaliser turns raw combine rows into player records carrying combine
// metrics only.
type Normaliser struct{}

var _ driven.TableNormaliser = (*Normaliser)(nil)

// New creates a new combine normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise cleans the combine table. Rows without a player name are
// skipped and counted. Duplicate player rows resolve most-recent-wins,
// which for a flat file means the last row in file order.
func (n *Normaliser) Normalise(table domain.RawTable) ([]domain.PlayerRecord, normalisers.Stats, error) {
	nameCol := table.Column("player")
	if nameCol < 0 {
		nameCol = table.Column("name")
	}
	if nameCol < 0 {
		return nil, normalisers.Stats{}, fmt.Errorf("%w: %s has no player column", domain.ErrDataSource, table.Source)
	}

	teamCol := table.Column("team")
	posCol := table.Column("pos")
	if posCol < 0 {
		posCol = table.Column("position")
	}

	cols := map[string]int{
		"height":    table.Column("height"),
		"weight":    table.Column("weight"),
		"forty":     table.Column("40yd"),
		"vertical":  table.Column("vertical"),
		"bench":     table.Column("bench"),
		"broad":     table.Column("broad jump"),
		"threecone": table.Column("3cone"),
		"shuttle":   table.Column("shuttle"),
	}

	var stats normalisers.Stats
	byName := make(map[string]int)
	var records []domain.PlayerRecord

	for row := range table.Rows {
		stats.RowsSeen++

		name := domain.CanonicalName(table.Cell(row, nameCol))
		if name == "" {
			stats.RowsSkipped++
			continue
		}

		metrics := &domain.CombineMetrics{}
		metrics.HeightIn, _ = normalisers.ParseFloat(table.Cell(row, cols["height"]))
		metrics.WeightLb, _ = normalisers.ParseFloat(table.Cell(row, cols["weight"]))
		metrics.FortyYard, _ = normalisers.ParseFloat(table.Cell(row, cols["forty"]))
		metrics.Vertical, _ = normalisers.ParseFloat(table.Cell(row, cols["vertical"]))
		metrics.BenchReps, _ = normalisers.ParseInt(table.Cell(row, cols["bench"]))
		metrics.BroadJump, _ = normalisers.ParseFloat(table.Cell(row, cols["broad"]))
		metrics.ThreeCone, _ = normalisers.ParseFloat(table.Cell(row, cols["threecone"]))
		metrics.Shuttle, _ = normalisers.ParseFloat(table.Cell(row, cols["shuttle"]))

		rec := domain.PlayerRecord{
			Name:      name,
			Team:      table.Cell(row, teamCol),
			Positions: normalisers.SplitPositions(table.Cell(row, posCol)),
			Combine:   metrics,
		}

		if prev, ok := byName[name]; ok {
			records[prev] = rec
			stats.Duplicates++
			continue
		}
		byName[name] = len(records)
		records = append(records, rec)
	}

	if stats.RowsSkipped > 0 {
		logger.Error("combine: skipped %d of %d rows (missing player name)", stats.RowsSkipped, stats.RowsSeen)
	}
	return records, stats, nil
}
