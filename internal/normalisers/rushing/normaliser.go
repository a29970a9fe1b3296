// Package rushing normalises the season rushing stats table.
package rushing

import (
	"fmt"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers"
)

// Normaliser turns raw rushing rows into player records carrying rushing
// aggregates only.
type Normaliser struct{}

var _ driven.TableNormaliser = (*Normaliser)(nil)

// New creates a new rushing normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise cleans the rushing table. Duplicate player rows resolve
// most-recent-wins: a later row for the same player replaces the earlier
// one, preferring the higher season when both rows carry one.
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
	seasonCol := table.Column("season")
	if seasonCol < 0 {
		seasonCol = table.Column("year")
	}
	attCol := table.Column("att")
	if attCol < 0 {
		attCol = table.Column("attempts")
	}
	ydsCol := table.Column("yds")
	if ydsCol < 0 {
		ydsCol = table.Column("yards")
	}
	ypcCol := table.Column("y/a")
	if ypcCol < 0 {
		ypcCol = table.Column("ypc")
	}
	tdCol := table.Column("td")
	fumCol := table.Column("fmb")
	if fumCol < 0 {
		fumCol = table.Column("fumbles")
	}
	fdCol := table.Column("1d")

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

		rushing := &domain.RushingStats{}
		if season, _ := normalisers.ParseInt(table.Cell(row, seasonCol)); season != nil {
			rushing.Season = *season
		}
		rushing.Attempts, _ = normalisers.ParseInt(table.Cell(row, attCol))
		rushing.Yards, _ = normalisers.ParseFloat(table.Cell(row, ydsCol))
		rushing.YardsPerCarry, _ = normalisers.ParseFloat(table.Cell(row, ypcCol))
		rushing.Touchdowns, _ = normalisers.ParseInt(table.Cell(row, tdCol))
		rushing.Fumbles, _ = normalisers.ParseInt(table.Cell(row, fumCol))
		rushing.FirstDowns, _ = normalisers.ParseInt(table.Cell(row, fdCol))

		rec := domain.PlayerRecord{
			Name:      name,
			Team:      table.Cell(row, teamCol),
			Positions: normalisers.SplitPositions(table.Cell(row, posCol)),
			Rushing:   rushing,
		}

		if prev, ok := byName[name]; ok {
			stats.Duplicates++
			if records[prev].Rushing.Season <= rushing.Season {
				records[prev] = rec
			}
			continue
		}
		byName[name] = len(records)
		records = append(records, rec)
	}

	if stats.RowsSkipped > 0 {
		logger.Error("rushing: skipped %d of %d rows (missing player name)", stats.RowsSkipped, stats.RowsSeen)
	}
	return records, stats, nil
}
