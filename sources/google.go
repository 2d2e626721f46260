package sources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nzai/qs/constants"
	"github.com/nzai/qs/samples"
	"github.com/nzai/qs/utils"
	"go.uber.org/zap"
)

const googleUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ticker suffix to google finance exchange code
var googleExchanges = map[string]string{
	".NS": "NSE",
	".BO": "BOM",
}

// GoogleFinance google finance source. Scrapes the quote page for the
// spot price, so open and close carry the same value and the sample is
// stamped with the scrape time in the output location.
type GoogleFinance struct {
	location     *time.Location
	pricePattern *regexp.Regexp
	valuePattern *regexp.Regexp
}

// NewGoogleFinance create google finance source
func NewGoogleFinance(location *time.Location) *GoogleFinance {
	return &GoogleFinance{
		location:     location,
		pricePattern: regexp.MustCompile(`class="YMlKec fxKbKc"[^>]*>([^<]+)<`),
		valuePattern: regexp.MustCompile(`([0-9]+(?:[,0-9]*)(?:\.[0-9]+)?)`),
	}
}

// Code get source code
func (s GoogleFinance) Code() string {
	return "google"
}

// Fetch sample the current spot price for a ticker
func (s GoogleFinance) Fetch(ticker string) (*samples.Observation, error) {
	symbol, err := s.quoteSymbol(ticker)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://www.google.com/finance/quote/%s", symbol)
	headers := map[string]string{"User-Agent": googleUserAgent}

	html, err := utils.TryDownloadStringWithHeader(url, headers, constants.RetryCount, constants.RetryInterval)
	if err != nil {
		zap.L().Error("download google finance quote failed", zap.Error(err), zap.String("url", url))
		return nil, err
	}

	price, err := s.ExtractPrice(html)
	if err != nil {
		zap.L().Error("extract google finance price failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.String("url", url))
		return nil, err
	}

	return &samples.Observation{
		Time:  time.Now().In(s.location).Truncate(time.Second),
		Open:  price,
		Close: price,
	}, nil
}

// quoteSymbol convert a ticker to a google finance SYMBOL:EXCHANGE pair.
// An unknown suffix fails the fetch rather than guessing the exchange.
func (s GoogleFinance) quoteSymbol(ticker string) (string, error) {
	if strings.Contains(ticker, ":") {
		return ticker, nil
	}

	for suffix, exchange := range googleExchanges {
		if strings.HasSuffix(ticker, suffix) {
			return fmt.Sprintf("%s:%s", strings.TrimSuffix(ticker, suffix), exchange), nil
		}
	}

	return "", fmt.Errorf("unknown exchange suffix for ticker: %s", ticker)
}

// ExtractPrice extract the spot price from the quote page html
func (s GoogleFinance) ExtractPrice(html string) (float64, error) {
	matches := s.pricePattern.FindStringSubmatch(html)
	if len(matches) != 2 {
		return 0, fmt.Errorf("%w: price element not found, page structure may have changed", ErrNotAvailable)
	}

	values := s.valuePattern.FindStringSubmatch(matches[1])
	if len(values) != 2 {
		return 0, fmt.Errorf("price text invalid: %s", matches[1])
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(values[1], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("price text invalid: %s", matches[1])
	}

	return price, nil
}
