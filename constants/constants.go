package constants

import "time"

const (
	// RetryCount defind retry count
	RetryCount = 3
	// RetryInterval define retry intervals
	RetryInterval = time.Second * 5
	// DefaultParallel define default fetch parallel
	DefaultParallel = 6
	// DatePattern define daily granularity date pattern
	DatePattern = "2006-01-02"
	// DateTimePattern define minute granularity date pattern
	DateTimePattern = "2006-01-02 15:04:05"
	// DefaultSuffix define default table file suffix
	DefaultSuffix = ".1m.csv"
	// DefaultPollInterval poll sources every 60 seconds
	DefaultPollInterval = time.Second * 60
	// DefaultFetchPeriod define default source look-back window
	DefaultFetchPeriod = time.Minute * 2
	// DefaultTimezone define default output timezone
	DefaultTimezone = "Asia/Kolkata"
)
