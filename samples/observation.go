package samples

import (
	"strconv"
	"time"

	"github.com/nzai/qs/constants"
	"github.com/nzai/qs/tables"
)

// Header define the table field schema produced by samplers
func Header() []string {
	return []string{"date", "open", "close"}
}

// Observation define one sampled price point for a ticker
type Observation struct {
	Time  time.Time
	Open  float64
	Close float64
}

// Row convert observation to a minute granularity table row
func (o Observation) Row() tables.Row {
	return tables.Row{
		Date:   o.Time.Format(constants.DateTimePattern),
		Values: []string{formatPrice(o.Open), formatPrice(o.Close)},
	}
}

// DailyRow convert observation to a daily granularity table row
func (o Observation) DailyRow() tables.Row {
	return tables.Row{
		Date:   o.Time.Format(constants.DatePattern),
		Values: []string{formatPrice(o.Open), formatPrice(o.Close)},
	}
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Rows convert a window of observations to table rows, collapsing the
// date key to daily granularity when daily is set
func Rows(observations []Observation, daily bool) []tables.Row {
	rows := make([]tables.Row, 0, len(observations))
	for _, observation := range observations {
		if daily {
			rows = append(rows, observation.DailyRow())
			continue
		}

		rows = append(rows, observation.Row())
	}

	return rows
}
