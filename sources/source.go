package sources

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nzai/qs/samples"
)

// ErrNotAvailable define error raised when a source has no data for a
// ticker at this moment. Not a failure, callers skip and retry next poll.
var ErrNotAvailable = errors.New("no data available")

// Source define a ticker price source
type Source interface {
	// Code get source code
	Code() string
	// Fetch sample the latest observation for a ticker
	Fetch(ticker string) (*samples.Observation, error)
}

// HistorySource define a source able to fetch a whole window of candles
// for backfilling a table. interval is a source granularity like 1m or 1d.
type HistorySource interface {
	FetchHistory(ticker string, period time.Duration, interval string) ([]samples.Observation, error)
}

// Parse parse command argument
func Parse(arg string, location *time.Location, period time.Duration) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "yahoo":
		return NewYahooFinance(location, period), nil
	case "google":
		return NewGoogleFinance(location), nil
	default:
		return nil, fmt.Errorf("source type invalid: %s", arg)
	}
}
