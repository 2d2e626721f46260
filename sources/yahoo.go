package sources

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/netop"
	"github.com/nzai/qs/constants"
	"github.com/nzai/qs/samples"
	"go.uber.org/zap"
)

var (
	// yahooNotFoundCode define error code raised by yahoo finance on unknown symbol
	yahooNotFoundCode = "Not Found"
)

// YahooFinance yahoo finance source. Samples the last 1m candle from the
// v8 chart api. Candle timestamps are unix epoch so they convert to the
// output location without guessing the exchange timezone.
type YahooFinance struct {
	location *time.Location
	period   time.Duration
}

// NewYahooFinance create yahoo finance source
func NewYahooFinance(location *time.Location, period time.Duration) *YahooFinance {
	return &YahooFinance{location: location, period: period}
}

// Code get source code
func (s YahooFinance) Code() string {
	return "yahoo"
}

// Fetch sample the latest 1m candle for a ticker
func (s YahooFinance) Fetch(ticker string) (*samples.Observation, error) {
	quote, err := s.chart(ticker, s.period, "1m")
	if err != nil {
		return nil, err
	}

	observation := quote.LastCandle(s.location)
	if observation == nil {
		return nil, ErrNotAvailable
	}

	return observation, nil
}

// FetchHistory fetch the whole candle window for a ticker
func (s YahooFinance) FetchHistory(ticker string, period time.Duration, interval string) ([]samples.Observation, error) {
	quote, err := s.chart(ticker, period, interval)
	if err != nil {
		return nil, err
	}

	observations := quote.Candles(s.location)
	if len(observations) == 0 {
		return nil, ErrNotAvailable
	}

	return observations, nil
}

// chart query the chart api and validate the response
func (s YahooFinance) chart(ticker string, period time.Duration, interval string) (*yahooChart, error) {
	now := time.Now()
	pattern := "https://query2.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s&includePrePost=true&corsDomain=finance.yahoo.com"
	url := fmt.Sprintf(pattern, ticker, now.Add(-period).Unix(), now.Unix(), interval)

	response, err := netop.Get(url, netop.Retry(constants.RetryCount, constants.RetryInterval))
	if err != nil {
		zap.L().Error("download yahoo finance quote failed", zap.Error(err), zap.String("url", url))
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response status code %d", response.StatusCode)
	}

	quote := new(yahooChart)
	err = sonic.ConfigFastest.NewDecoder(response.Body).Decode(quote)
	if err != nil {
		zap.L().Error("unmarshal yahoo finance response failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.String("url", url))
		return nil, err
	}

	err = quote.Validate()
	if err != nil {
		if errors.Is(err, ErrNotAvailable) {
			return nil, ErrNotAvailable
		}

		zap.L().Error("yahoo finance response invalid",
			zap.Error(err),
			zap.String("ticker", ticker))
		return nil, err
	}

	return quote, nil
}

// yahooChart define yahoo finance chart response structure
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency        string `json:"currency"`
				Symbol          string `json:"symbol"`
				ExchangeName    string `json:"exchangeName"`
				Timezone        string `json:"timezone"`
				GMTOffset       int64  `json:"gmtoffset"`
				DataGranularity string `json:"dataGranularity"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quotes []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Err *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Validate validate response is valid
func (c yahooChart) Validate() error {
	if c.Chart.Err != nil {
		if c.Chart.Err.Code == yahooNotFoundCode {
			return fmt.Errorf("%w: %s", ErrNotAvailable, c.Chart.Err.Description)
		}
		return errors.New(c.Chart.Err.Description)
	}

	if len(c.Chart.Result) == 0 {
		return fmt.Errorf("%w: chart result is empty", ErrNotAvailable)
	}

	result := c.Chart.Result[0]
	if len(result.Indicators.Quotes) == 0 {
		return errors.New("chart indicators quote is empty")
	}

	quote := result.Indicators.Quotes[0]
	if len(result.Timestamp) != len(quote.Open) || len(result.Timestamp) != len(quote.Close) {
		return errors.New("candle count mismatch")
	}

	return nil
}

// LastCandle extract the most recent candle with both prices present
func (c yahooChart) LastCandle(location *time.Location) *samples.Observation {
	candles := c.Candles(location)
	if len(candles) == 0 {
		return nil
	}

	return &candles[len(candles)-1]
}

// Candles extract every candle with both prices present, in timestamp order
func (c yahooChart) Candles(location *time.Location) []samples.Observation {
	result := c.Chart.Result[0]
	quote := result.Indicators.Quotes[0]

	observations := make([]samples.Observation, 0, len(result.Timestamp))
	for index, timestamp := range result.Timestamp {
		if quote.Open[index] == nil || quote.Close[index] == nil {
			continue
		}

		observations = append(observations, samples.Observation{
			Time:  time.Unix(timestamp, 0).In(location),
			Open:  *quote.Open[index],
			Close: *quote.Close[index],
		})
	}

	return observations
}
