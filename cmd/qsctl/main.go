package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	app := &cli.App{
		Name:      "qsctl",
		Usage:     "a price sampler cli",
		UsageText: "qsctl [global options] command [command options] [arguments...]",
		HideHelp:  true,
		Commands: []*cli.Command{
			showVersion{}.Command(),
			new(fetch).Command(),
			new(backfill).Command(),
			new(export).Command(),
		},
	}

	// timeout duration: 10m
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*10)
	defer cancel()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		fmt.Println("\033[31m" + err.Error() + "\033[0m ")
		return
	}
}
