package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"grana/internal/amqp"
	"grana/internal/cli"
	applog "grana/internal/log"
	"grana/internal/sheets"
	"grana/internal/sheets/google"
	"grana/internal/sheets/memory"
	"grana/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	var exporter sheets.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Sheets client init failed", applog.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Exporting to Google Sheets", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		// No spreadsheet configured: consume and drop into memory so the
		// queue still drains in development.
		exporter = memory.New()
		logger.Warn("GOOGLE_SPREADSHEET_ID not set, events are consumed but not exported")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("AMQP init failed", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewExportWorker(exporter, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx, client)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker exited with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
