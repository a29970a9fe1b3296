package injury

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

func testTable(rows [][]string) domain.RawTable {
	return domain.RawTable{
		Source:  "injuries.csv",
		Headers: []string{"Player", "Team", "Date", "Injury", "Games Missed"},
		Rows:    rows,
	}
}

func TestNormalise_EventsAccumulatePerPlayer(t *testing.T) {
	table := testTable([][]string{
		{"JK DOBBINS", "BAL", "2023-09-10", "achilles tear", "16"},
		{"jk dobbins", "BAL", "2021-08-28", "ACL tear", "17"},
	})

	records, stats, err := New().Normalise(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, stats.RowsSeen)

	rec := records[0]
	assert.Equal(t, "Jk Dobbins", rec.Name)
	require.Len(t, rec.Injuries, 2)
	// Oldest first regardless of file order.
	assert.Equal(t, "ACL tear", rec.Injuries[0].Description)
	assert.Equal(t, 17, rec.Injuries[0].GamesMissed)
	assert.Equal(t, "achilles tear", rec.Injuries[1].Description)
}

func TestNormalise_RowWithoutDescriptionSkipped(t *testing.T) {
	table := testTable([][]string{
		{"Austin Ekeler", "LAC", "2023-09-17", "", ""},
		{"Austin Ekeler", "LAC", "2023-09-17", "ankle sprain", "3"},
	})

	records, stats, err := New().Normalise(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, stats.RowsSkipped)
	assert.Len(t, records[0].Injuries, 1)
}

func TestNormalise_UnparseableDateKept(t *testing.T) {
	// An event with a bad date is still an event; the date just stays zero.
	table := testTable([][]string{
		{"Breece Hall", "NYJ", "week 7", "ACL tear", "11"},
	})

	records, _, err := New().Normalise(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Injuries, 1)
	assert.True(t, records[0].Injuries[0].Date.IsZero())
}

func TestNormalise_NoPlayerColumnFatal(t *testing.T) {
	table := domain.RawTable{
		Source:  "injuries.csv",
		Headers: []string{"Date", "Injury"},
		Rows:    [][]string{{"2023-09-10", "hamstring"}},
	}

	_, _, err := New().Normalise(table)
	assert.ErrorIs(t, err, domain.ErrDataSource)
}
