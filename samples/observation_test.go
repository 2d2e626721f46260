package samples

import (
	"testing"
	"time"

	"github.com/nzai/qs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservation_Row(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)

	observation := Observation{
		Time:  time.Date(2024, 1, 1, 9, 15, 0, 0, ist),
		Open:  100.0,
		Close: 101.25,
	}

	row := observation.Row()
	assert.Equal(t, "2024-01-01 09:15:00", row.Date)
	assert.Equal(t, []string{"100", "101.25"}, row.Values)
	assert.NoError(t, row.Validate(Header()))

	daily := observation.DailyRow()
	assert.Equal(t, "2024-01-01", daily.Date)
	assert.Equal(t, row.Values, daily.Values)
}

func TestRows(t *testing.T) {
	observations := []Observation{
		{Time: time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC), Open: 100, Close: 101},
		{Time: time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC), Open: 102, Close: 103},
	}

	rows := Rows(observations, false)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01 09:15:00", rows[0].Date)

	rows = Rows(observations, true)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.Equal(t, "2024-01-02", rows[1].Date)
}

func TestRows_BackfillBatch(t *testing.T) {
	// a whole candle window lands in one append call
	observations := make([]Observation, 0, 30)
	for minute := 29; minute >= 0; minute-- {
		observations = append(observations, Observation{
			Time:  time.Date(2024, 1, 1, 9, minute, 0, 0, time.UTC),
			Open:  100 + float64(minute),
			Close: 101 + float64(minute),
		})
	}

	appender := tables.NewAppender(t.TempDir(), ".1m.csv")
	result, err := appender.Append("ADANIPOWER.NS", Header(), Rows(observations, false))
	require.NoError(t, err)
	assert.Equal(t, 30, result.Added)

	table, err := tables.ReadTable(appender.FilePath("ADANIPOWER.NS"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 30)
	for index := 1; index < len(table.Rows); index++ {
		assert.Less(t, table.Rows[index-1].Date, table.Rows[index].Date)
	}

	// re-running the same backfill is a no-op
	result, err = appender.Append("ADANIPOWER.NS", Header(), Rows(observations, false))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
}
