package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankstmt/internal/amqp"
	"bankstmt/internal/cli"
	"bankstmt/internal/export"
	gsheet "bankstmt/internal/export/google"
	mem "bankstmt/internal/export/memory"
	"bankstmt/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bankstmt-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStorage(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Pick the export target
	var writer export.StatementWriter
	switch cfg.ExportBackend {
	case "sheets":
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets export initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		writer = mem.New()
		logger.Info("Memory export initialized - statements stay in-process")
	}

	syncWorker := worker.NewSyncWorker(repo, writer, cfg.ExportBatchSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On startup, drain anything that was saved while the worker was down
	logger.Info("Performing startup export check...")
	if err := syncWorker.ProcessPending(ctx); err != nil {
		logger.Error("Startup export check failed", "error", err)
		// Don't exit - continue with normal operation
	}

	// AMQP consumption is optional; the periodic sweep alone still
	// drains pending statements.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			handler := func(msg *amqp.StatementSyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, *msg)
			}
			if err := amqpClient.ConsumeStatementSync(ctx, handler); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", "error", err)
				}
				cancel()
			}
		}()
	} else {
		logger.Info("Skipping AMQP consumption - no AMQP_URL provided")
	}

	// Periodic sweep for statements whose sync message was lost
	ticker := time.NewTicker(cfg.ExportInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := syncWorker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(5 * time.Second):
		logger.Info("Worker shutdown complete")
	}
}
