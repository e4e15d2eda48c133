package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"expensed/internal/amqp"
	"expensed/internal/cli"
	"expensed/internal/core"
	"expensed/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting expensed-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	limitCents, err := core.ParseDecimalToCents(cfg.AlertWeeklyLimit)
	if err != nil {
		logger.Error("Invalid ALERT_WEEKLY_LIMIT", "error", err, "value", cfg.AlertWeeklyLimit)
		os.Exit(1)
	}

	st := cli.OpenStore(logger, cfg)
	defer st.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alertWorker := worker.NewAlertWorker(st, amqpClient, core.Money{Cents: limitCents}, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return alertWorker.Run(ctx)
	})

	logger.Info("Alert worker running",
		"queue", cfg.AMQPQueue,
		"weekly_limit", cfg.AlertWeeklyLimit)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
