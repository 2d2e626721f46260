package main

import (
	"fmt"
	"strings"

	"github.com/nzai/qs/config"
	"github.com/nzai/qs/recorder"
	"github.com/nzai/qs/sources"
	"github.com/nzai/qs/tables"
	"github.com/urfave/cli/v2"
)

type fetch struct{}

func (s *fetch) Command() *cli.Command {
	return &cli.Command{
		Name:    "fetch",
		Usage:   "run one poll round and append new samples",
		Aliases: []string{"f"},
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

			appender := tables.NewAppender(conf.OutDir, conf.CsvSuffix)
			summary := recorder.NewRecorder(source, appender).RecordAll(tickers)

			fmt.Printf("fetched %d tickers, appended %d rows, skipped %d, failed %d\n",
				summary.Fetched, summary.Added, summary.Skipped, summary.Failed)

			return nil
		},
	}
}
