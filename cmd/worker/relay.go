package worker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/meki101/mekitech.co.ke/internal/kafka"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Publish outbox events to Kafka",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dbx, err := setup(cmd)
		if err != nil {
			return err
		}
		defer dbx.Close()

		producer := kafka.NewProducer(cfg.Kafka)
		defer producer.Close()

		r := worker.NewRelay(repository.NewOutboxRepository(dbx), producer)
		if cfg.Relay.BatchSize > 0 {
			r.BatchSize = cfg.Relay.BatchSize
		}
		if cfg.Relay.PollInterval > 0 {
			r.PollInterval = cfg.Relay.PollInterval
		}

		// graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Log.Info("relay started",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.Int("batch_size", r.BatchSize),
			zap.Duration("poll_interval", r.PollInterval))

		return r.Run(ctx)
	},
}
