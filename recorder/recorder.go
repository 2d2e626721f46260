package recorder

import (
	"errors"
	"sync"

	"github.com/nzai/qs/constants"
	"github.com/nzai/qs/samples"
	"github.com/nzai/qs/sources"
	"github.com/nzai/qs/tables"
	"go.uber.org/zap"
)

// Recorder samples one observation per ticker from the source and merges
// it into the per-ticker table
type Recorder struct {
	source   sources.Source
	appender *tables.Appender
}

// NewRecorder create recorder
func NewRecorder(source sources.Source, appender *tables.Appender) *Recorder {
	return &Recorder{
		source:   source,
		appender: appender,
	}
}

// Summary define the outcome of one poll round
type Summary struct {
	Fetched int
	Added   int
	Skipped int
	Failed  int
}

// Record sample one ticker and append the observation
func (s Recorder) Record(ticker string) (tables.Result, *samples.Observation, error) {
	observation, err := s.source.Fetch(ticker)
	if err != nil {
		return tables.Result{}, nil, err
	}

	result, err := s.appender.Append(ticker, samples.Header(), []tables.Row{observation.Row()})
	if err != nil {
		return tables.Result{}, observation, err
	}

	return result, observation, nil
}

// RecordAll sample every ticker in parallel. One ticker failing never
// blocks the others.
func (s Recorder) RecordAll(tickers []string) Summary {
	ch := make(chan bool, constants.DefaultParallel)
	defer close(ch)

	wg := new(sync.WaitGroup)
	wg.Add(len(tickers))

	mutex := new(sync.Mutex)
	summary := Summary{}
	for _, ticker := range tickers {
		go func(ticker string) {
			defer func() {
				<-ch
				wg.Done()
			}()

			result, observation, err := s.Record(ticker)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				if errors.Is(err, sources.ErrNotAvailable) {
					zap.L().Debug("no data available", zap.String("ticker", ticker))
					return
				}

				zap.L().Error("record ticker failed", zap.Error(err), zap.String("ticker", ticker))
				summary.Failed++
				return
			}

			summary.Fetched++
			summary.Added += result.Added
			summary.Skipped += result.Skipped

			if result.Added > 0 {
				zap.L().Info("ticker rows appended",
					zap.String("ticker", ticker),
					zap.Int("added", result.Added),
					zap.Time("timestamp", observation.Time))
			}
		}(ticker)

		// limiter
		ch <- false
	}
	wg.Wait()

	return summary
}
