package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nzai/qs/api"
	"github.com/nzai/qs/config"
	"github.com/nzai/qs/recorder"
	"github.com/nzai/qs/schedulers"
	"github.com/nzai/qs/sources"
	"github.com/nzai/qs/tables"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configArgument = flag.String("c", "config.toml", "config file path")
)

func main() {
	flag.Parse()

	conf, err := config.Parse(*configArgument)
	if err != nil {
		logger, _ := zap.NewDevelopment()
		logger.Fatal("parse config failed", zap.Error(err), zap.String("path", *configArgument))
	}

	logger := newLogger(conf)
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	source, err := sources.Parse(conf.Source, conf.Location(), conf.FetchPeriod())
	if err != nil {
		zap.L().Fatal("parse source argument failed",
			zap.Error(err),
			zap.String("arg", conf.Source))
	}

	appender := tables.NewAppender(conf.OutDir, conf.CsvSuffix)
	rec := recorder.NewRecorder(source, appender)

	var worker *schedulers.Worker
	if !conf.DisableBackground {
		worker = schedulers.NewWorker(conf.PollInterval(), func() {
			summary := rec.RecordAll(conf.Tickers)
			zap.L().Info("poll round finished",
				zap.Int("fetched", summary.Fetched),
				zap.Int("added", summary.Added),
				zap.Int("skipped", summary.Skipped),
				zap.Int("failed", summary.Failed))
		})

		err = worker.Start()
		if err != nil {
			zap.L().Fatal("start worker failed", zap.Error(err))
		}
	}

	server := api.NewServer(rec, appender, worker, conf.Location(), conf.Tickers, conf.APIKey)
	httpServer := &http.Server{Addr: conf.Bind, Handler: server}

	go func() {
		zap.L().Info("api server listening", zap.String("bind", conf.Bind))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("api server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("signal received, shutting down")
	if worker != nil {
		worker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = httpServer.Shutdown(ctx)
	if err != nil {
		zap.L().Error("shut server down failed", zap.Error(err))
	}
}

// newLogger build console logger, teeing to a rotated file when configured
func newLogger(conf *config.Config) *zap.Logger {
	lc := zap.NewDevelopmentConfig()
	lc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, _ := lc.Build()

	if conf.Log.File == "" {
		return logger
	}

	writer := &lumberjack.Logger{
		Filename:   conf.Log.File,
		MaxSize:    conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	fileCore := zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.InfoLevel)

	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
}
