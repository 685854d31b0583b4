package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"farmdash/internal/backend"
	"farmdash/internal/config"
	"farmdash/internal/events"
	"farmdash/internal/export"
	apphttp "farmdash/internal/http"
	"farmdash/internal/log"
	"farmdash/internal/session"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	api, err := backend.CreateBackend(backend.Config{
		Type:    backend.BackendType(cfg.DataBackend),
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
	}, logger.WithComponent(log.ComponentBackend))
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		os.Exit(1)
	}

	sessions := session.Open(cfg.SessionDBPath, logger.WithComponent(log.ComponentSession))
	defer sessions.Close()

	deps := apphttp.Deps{
		Sessions: sessions,
		Backend:  api,
		Logger:   logger,
	}

	if cfg.EventsEnabled() {
		eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
			logger.WithComponent(log.ComponentEvents))
		if err != nil {
			// Audit events are best effort; the dashboard runs without them.
			logger.Warn("Audit events disabled: AMQP unavailable", log.FieldError, err.Error())
		} else {
			defer eventsClient.Close()
			deps.Publisher = eventsClient
			logger.Info("Audit event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	if cfg.ExportEnabled() {
		exporter, err := export.NewSheetsExporter(context.Background(),
			cfg.GoogleSpreadsheetID, cfg.GoogleCredentialsFile,
			logger.WithComponent(log.ComponentExport))
		if err != nil {
			logger.Error("Failed to initialize spreadsheet export", log.FieldError, err.Error())
			os.Exit(1)
		}
		deps.Exporter = exporter
		logger.Info("Spreadsheet export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	srv := apphttp.NewServer(":"+cfg.Port, deps)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting farmdash server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
