// farmdash-audit consumes audit events from the broker and writes them to
// the structured log, giving operators a durable trail of who created what.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"farmdash/internal/config"
	"farmdash/internal/events"
	"farmdash/internal/log"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.DefaultConfig().Level,
		Component: log.ComponentAudit,
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the audit consumer")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to connect to broker", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())
		cancel()
	}()

	logger.Info("Audit consumer started",
		log.FieldOperation, log.OpStartup,
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	err = client.Consume(ctx, func(e *events.Event) error {
		logger.Info("Audit event",
			log.FieldOperation, log.OpConsume,
			"event_id", e.EventID,
			"kind", e.Kind,
			log.FieldUserID, e.UserID,
			log.FieldProjectID, e.ProjectID,
			log.FieldRecordID, e.RecordID,
			log.FieldRecordType, e.RecordType.String(),
			log.FieldAmount, e.Amount,
			"occurred_at", e.Timestamp)
		return nil
	})
	if err != nil && err != context.Canceled {
		logger.Error("Consumer stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("Audit consumer stopped gracefully")
}
