package config

import (
	"errors"
	"strings"
	"time"

	"github.com/nzai/qs/constants"

	"github.com/BurntSushi/toml"
)

// Config global config
type Config struct {
	OutDir              string   `toml:"out_dir"`
	CsvSuffix           string   `toml:"csv_suffix"`
	Tickers             []string `toml:"tickers"`
	PollIntervalSeconds int      `toml:"poll_interval_seconds"`
	FetchPeriodMinutes  int      `toml:"fetch_period_minutes"`
	DisableBackground   bool     `toml:"disable_background"`
	Source              string   `toml:"source"`
	Timezone            string   `toml:"timezone"`
	Bind                string   `toml:"bind"`
	APIKey              string   `toml:"api_key"`
	Log                 struct {
		File       string `toml:"file"`
		MaxSizeMB  int    `toml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups"`
	} `toml:"log"`
}

// Valid validate config and apply defaults
func (s *Config) Valid() error {
	if len(s.Tickers) == 0 {
		return errors.New("tickers undefined")
	}

	for _, ticker := range s.Tickers {
		if strings.TrimSpace(ticker) == "" {
			return errors.New("ticker is empty")
		}
	}

	if strings.TrimSpace(s.OutDir) == "" {
		s.OutDir = "output"
	}

	if strings.TrimSpace(s.CsvSuffix) == "" {
		s.CsvSuffix = constants.DefaultSuffix
	}

	if s.PollIntervalSeconds <= 0 {
		s.PollIntervalSeconds = int(constants.DefaultPollInterval / time.Second)
	}

	if s.FetchPeriodMinutes <= 0 {
		s.FetchPeriodMinutes = int(constants.DefaultFetchPeriod / time.Minute)
	}

	if strings.TrimSpace(s.Source) == "" {
		s.Source = "yahoo"
	}

	if strings.TrimSpace(s.Timezone) == "" {
		s.Timezone = constants.DefaultTimezone
	}

	if strings.TrimSpace(s.Bind) == "" {
		s.Bind = ":8080"
	}

	_, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return err
	}

	return nil
}

// PollInterval get poll interval duration
func (s Config) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

// FetchPeriod get source look-back window
func (s Config) FetchPeriod() time.Duration {
	return time.Duration(s.FetchPeriodMinutes) * time.Minute
}

// Location get output timezone location
func (s Config) Location() *time.Location {
	location, _ := time.LoadLocation(s.Timezone)
	return location
}

var (
	currentConfig *Config
)

// Get get current config
func Get() *Config {
	return currentConfig
}

// Parse parse config from file
func Parse(filePath string) (*Config, error) {
	currentConfig = new(Config)
	_, err := toml.DecodeFile(filePath, currentConfig)
	if err != nil {
		return nil, err
	}

	return currentConfig, currentConfig.Valid()
}
