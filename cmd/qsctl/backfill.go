package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nzai/qs/config"
	"github.com/nzai/qs/samples"
	"github.com/nzai/qs/sources"
	"github.com/nzai/qs/tables"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type backfill struct{}

func (s *backfill) Command() *cli.Command {
	return &cli.Command{
		Name:    "backfill",
		Usage:   "fetch a window of historical candles and append them all",
		Aliases: []string{"b"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "specify config file",
			},
			&cli.StringFlag{
				Name:    "tickers",
				Aliases: []string{"t"},
				Usage:   "comma separated tickers, config tickers when empty",
			},
			&cli.IntFlag{
				Name:    "days",
				Aliases: []string{"d"},
				Value:   60,
				Usage:   "specify look-back window in days",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Value:   "1m",
				Usage:   "specify candle granularity: eg 1m,2m,1d",
			},
		},
		Action: func(c *cli.Context) error {
			conf, err := config.Parse(c.String("config"))
			if err != nil {
				return err
			}

			tickers := conf.Tickers
			if c.String("tickers") != "" {
				tickers = strings.Split(c.String("tickers"), ",")
			}

			source, err := sources.Parse(conf.Source, conf.Location(), conf.FetchPeriod())
			if err != nil {
				return err
			}

			history, ok := source.(sources.HistorySource)
			if !ok {
				return fmt.Errorf("source %s can not fetch history", source.Code())
			}

			interval := c.String("interval")
			period := time.Duration(c.Int("days")) * time.Hour * 24
			appender := tables.NewAppender(conf.OutDir, conf.CsvSuffix)

			for _, ticker := range tickers {
				observations, err := history.FetchHistory(ticker, period, interval)
				if err != nil {
					zap.L().Error("fetch ticker history failed",
						zap.Error(err),
						zap.String("ticker", ticker))
					return err
				}

				rows := samples.Rows(observations, !strings.HasSuffix(interval, "m"))
				result, err := appender.Append(ticker, samples.Header(), rows)
				if err != nil {
					return err
				}

				fmt.Printf("%s: %d candles, appended %d rows, skipped %d\n",
					ticker, len(observations), result.Added, result.Skipped)
			}

			return nil
		},
	}
}
