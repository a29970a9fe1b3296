// Package injury normalises the injury log table.
package injury

import (
	"fmt"
	"sort"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers"
)

// Normaliser turns raw injury-log rows into player records carrying injury
// history only. Unlike the other tables, multiple rows per player are the
// normal case: each row is one injury event and events accumulate.
type Normaliser struct{}

var _ driven.TableNormaliser = (*Normaliser)(nil)

// New creates a new injury normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise cleans the injury table. A row needs at least a player name
// and an injury description to count as an event; rows missing either are
// skipped. Events are ordered oldest first per player, with undated events
// sorting before dated ones.
func (n *Normaliser) Normalise(table domain.RawTable) ([]domain.PlayerRecord, normalisers.Stats, error) {
	nameCol := table.Column("player")
	if nameCol < 0 {
		nameCol = table.Column("name")
	}
	if nameCol < 0 {
		return nil, normalisers.Stats{}, fmt.Errorf("%w: %s has no player column", domain.ErrDataSource, table.Source)
	}

	teamCol := table.Column("team")
	dateCol := table.Column("date")
	descCol := table.Column("injury")
	if descCol < 0 {
		descCol = table.Column("description")
	}
	missedCol := table.Column("games missed")
	if missedCol < 0 {
		missedCol = table.Column("games_missed")
	}

	var stats normalisers.Stats
	byName := make(map[string]int)
	var records []domain.PlayerRecord

	for row := range table.Rows {
		stats.RowsSeen++

		name := domain.CanonicalName(table.Cell(row, nameCol))
		desc := table.Cell(row, descCol)
		if name == "" || desc == "" {
			stats.RowsSkipped++
			continue
		}

		event := domain.InjuryEvent{Description: desc}
		if date, ok := normalisers.ParseDate(table.Cell(row, dateCol)); ok {
			event.Date = date
		}
		if missed, _ := normalisers.ParseInt(table.Cell(row, missedCol)); missed != nil {
			event.GamesMissed = *missed
		}

		idx, ok := byName[name]
		if !ok {
			idx = len(records)
			byName[name] = idx
			records = append(records, domain.PlayerRecord{
				Name: name,
				Team: table.Cell(row, teamCol),
			})
		}
		records[idx].Injuries = append(records[idx].Injuries, event)
	}

	for i := range records {
		events := records[i].Injuries
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Date.Before(events[b].Date)
		})
	}

	if stats.RowsSkipped > 0 {
		logger.Error("injuries: skipped %d of %d rows (missing player or description)", stats.RowsSkipped, stats.RowsSeen)
	}
	return records, stats, nil
}
