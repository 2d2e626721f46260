package sources

import (
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yahooChartJSON = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "INR",
				"symbol": "ADANIPOWER.NS",
				"exchangeName": "NSI",
				"timezone": "IST",
				"gmtoffset": 19800,
				"dataGranularity": "1m"
			},
			"timestamp": [1704080700, 1704080760, 1704080820],
			"indicators": {
				"quote": [{
					"open": [100.0, 102.0, null],
					"close": [101.0, 103.0, null]
				}]
			}
		}],
		"error": null
	}
}`

func TestYahooChart_LastCandle(t *testing.T) {
	chart := new(yahooChart)
	require.NoError(t, sonic.Unmarshal([]byte(yahooChartJSON), chart))
	require.NoError(t, chart.Validate())

	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// the trailing null candle is skipped
	observation := chart.LastCandle(ist)
	require.NotNil(t, observation)
	assert.Equal(t, 102.0, observation.Open)
	assert.Equal(t, 103.0, observation.Close)
	assert.Equal(t, int64(1704080760), observation.Time.Unix())
	assert.Equal(t, "2024-01-01 09:16:00", observation.Time.Format("2006-01-02 15:04:05"))
}

func TestYahooChart_Candles(t *testing.T) {
	chart := new(yahooChart)
	require.NoError(t, sonic.Unmarshal([]byte(yahooChartJSON), chart))
	require.NoError(t, chart.Validate())

	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// every candle with both prices present, null candle dropped
	observations := chart.Candles(ist)
	require.Len(t, observations, 2)
	assert.Equal(t, 100.0, observations[0].Open)
	assert.Equal(t, "2024-01-01 09:15:00", observations[0].Time.Format("2006-01-02 15:04:05"))
	assert.Equal(t, 103.0, observations[1].Close)
}

func TestYahooChart_Validate(t *testing.T) {
	tests := []struct {
		name         string
		json         string
		notAvailable bool
	}{
		{
			"symbol not found",
			`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
			true,
		},
		{
			"empty result",
			`{"chart":{"result":[],"error":null}}`,
			true,
		},
		{
			"count mismatch",
			`{"chart":{"result":[{"timestamp":[1,2],"indicators":{"quote":[{"open":[1.0],"close":[1.0]}]}}],"error":null}}`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := new(yahooChart)
			require.NoError(t, sonic.Unmarshal([]byte(tt.json), chart))

			err := chart.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.notAvailable, errors.Is(err, ErrNotAvailable))
		})
	}
}
