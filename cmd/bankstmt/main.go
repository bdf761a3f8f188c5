package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankstmt/internal/amqp"
	"bankstmt/internal/cli"
	apphttp "bankstmt/internal/http"
	"bankstmt/internal/profile"
	"bankstmt/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStorage(logger, cfg.SQLiteDBPath)

	// AMQP is optional. Without it statements are still saved and the
	// worker's pending sweep picks them up.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	svc := services.NewStatementService(repo, amqpClient)
	defer svc.Close()

	prof := profile.Default()
	if cfg.ProfilePath != "" {
		var err error
		prof, err = profile.Load(cfg.ProfilePath)
		if err != nil {
			logger.Error("Failed to load profile", "error", err, "path", cfg.ProfilePath)
			os.Exit(1)
		}
		logger.Info("Profile loaded", "path", cfg.ProfilePath, "profile", prof.Name)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		DefaultProfile: prof,
		DefaultSeed:    cfg.DefaultSeed,
		ReportCacheTTL: cfg.ReportCacheTTL,
	})
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting bankstmt server", "port", cfg.Port, "profile", prof.Name)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}
