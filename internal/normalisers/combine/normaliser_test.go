package combine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

func testTable(rows [][]string) domain.RawTable {
	return domain.RawTable{
		Source:  "combine_data.csv",
		Headers: []string{"Player", "Team", "Pos", "Height", "Weight", "40yd", "Vertical", "Bench", "Broad Jump", "3Cone", "Shuttle"},
		Rows:    rows,
	}
}

func TestNormalise_Success(t *testing.T) {
	table := testTable([][]string{
		{"saquon barkley", "NYG", "RB", "72", "233", "4.40", "41.0", "29", "124", "", ""},
	})

	records, stats, err := New().Normalise(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, stats.RowsSeen)
	assert.Equal(t, 0, stats.RowsSkipped)

	rec := records[0]
	assert.Equal(t, "Saquon Barkley", rec.Name)
	assert.Equal(t, "NYG", rec.Team)
	assert.Equal(t, []string{"RB"}, rec.Positions)

	require.NotNil(t, rec.Combine)
	require.NotNil(t, rec.Combine.FortyYard)
	assert.InDelta(t, 4.40, *rec.Combine.FortyYard, 1e-9)
	require.NotNil(t, rec.Combine.BenchReps)
	assert.Equal(t, 29, *rec.Combine.BenchReps)

	// Drills not run stay nil, never zero.
	assert.Nil(t, rec.Combine.ThreeCone)
	assert.Nil(t, rec.Combine.Shuttle)
}

func TestNormalise_MissingNameSkipped(t *testing.T) {
	table := testTable([][]string{
		{"", "DAL", "RB", "70", "220", "4.50", "", "", "", "", ""},
		{"Tony Pollard", "DAL", "RB", "72", "209", "4.52", "", "", "", "", ""},
	})

	records, stats, err := New().Normalise(table)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, stats.RowsSeen)
	assert.Equal(t, 1, stats.RowsSkipped)
}

func TestNormalise_DuplicateLastRowWins(t *testing.T) {
	table := testTable([][]string{
		{"Nick Chubb", "CLE", "RB", "71", "227", "4.52", "", "", "", "", ""},
		{"Nick Chubb", "CLE", "RB", "71", "227", "4.49", "", "", "", "", ""},
	})

	records, stats, err := New().Normalise(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, stats.Duplicates)
	require.NotNil(t, records[0].Combine.FortyYard)
	assert.InDelta(t, 4.49, *records[0].Combine.FortyYard, 1e-9)
}

func TestNormalise_NoPlayerColumnFatal(t *testing.T) {
	table := domain.RawTable{
		Source:  "combine_data.csv",
		Headers: []string{"Team", "40yd"},
		Rows:    [][]string{{"NYG", "4.40"}},
	}

	_, _, err := New().Normalise(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataSource)
}
