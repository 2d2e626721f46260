package main

import (
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/nzai/qs/config"
	"github.com/nzai/qs/tables"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const exportSheet = "Sheet1"

type export struct{}

func (s *export) Command() *cli.Command {
	return &cli.Command{
		Name:    "export",
		Usage:   "export a ticker table to an xlsx workbook",
		Aliases: []string{"e"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "specify config file",
			},
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Required: true,
				Usage:    "\033[1;33mRequired!\033[0m specify ticker",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "export.xlsx",
				Usage:   "specify output xlsx path",
			},
		},
		Action: func(c *cli.Context) error {
			conf, err := config.Parse(c.String("config"))
			if err != nil {
				return err
			}

			ticker := c.String("ticker")
			appender := tables.NewAppender(conf.OutDir, conf.CsvSuffix)

			table, err := tables.ReadTable(appender.FilePath(ticker))
			if err != nil {
				return err
			}

			output := c.String("output")
			err = s.export(table, output)
			if err != nil {
				return err
			}

			zap.L().Info("table exported",
				zap.String("ticker", ticker),
				zap.Int("rows", len(table.Rows)),
				zap.String("output", output))

			return nil
		},
	}
}

func (s *export) export(table *tables.Table, output string) error {
	xlsx := excelize.NewFile()

	for index, name := range table.Header {
		xlsx.SetCellValue(exportSheet, s.cell(index, 1), name)
	}

	for rowIndex, row := range table.Rows {
		xlsx.SetCellValue(exportSheet, s.cell(0, rowIndex+2), row.Date)
		for index, value := range row.Values {
			xlsx.SetCellValue(exportSheet, s.cell(index+1, rowIndex+2), value)
		}
	}

	return xlsx.SaveAs(output)
}

func (s *export) cell(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
