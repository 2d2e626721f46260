package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Parse(t *testing.T) {
	content := `
tickers = ["ADANIPOWER.NS", "ATGL.NS"]
poll_interval_seconds = 30
api_key = "secret"

[log]
file = "qs.log"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ADANIPOWER.NS", "ATGL.NS"}, cfg.Tickers)
	assert.Equal(t, time.Second*30, cfg.PollInterval())
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "qs.log", cfg.Log.File)

	// defaults
	assert.Equal(t, "output", cfg.OutDir)
	assert.Equal(t, ".1m.csv", cfg.CsvSuffix)
	assert.Equal(t, "yahoo", cfg.Source)
	assert.Equal(t, ":8080", cfg.Bind)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, time.Minute*2, cfg.FetchPeriod())
	assert.False(t, cfg.DisableBackground)
	assert.Equal(t, cfg, Get())
}

func TestConfig_Valid(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Valid(), "tickers are required")

	cfg = &Config{Tickers: []string{"A.NS"}, Timezone: "Not/AZone"}
	assert.Error(t, cfg.Valid())

	cfg = &Config{Tickers: []string{" "}}
	assert.Error(t, cfg.Valid())
}
