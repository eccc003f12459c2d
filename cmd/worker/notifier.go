package worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/meki101/mekitech.co.ke/internal/dispatcher"
	"github.com/meki101/mekitech.co.ke/internal/kafka"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/service/inquiry"
	"github.com/meki101/mekitech.co.ke/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Send inquiry notifications from Kafka",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dbx, err := setup(cmd)
		if err != nil {
			return err
		}
		defer dbx.Close()

		// providers → dispatcher
		provs := dispatcher.FromConfig(cfg.Providers)
		if len(provs) == 0 {
			return errors.New("no providers enabled in config")
		}
		disp := dispatcher.NewDispatcher(provs, cfg.Notifier.MaxAttempts)

		consumer := kafka.NewConsumer(cfg.Kafka, inquiry.CreatedTopic)
		defer func() {
			logger.Log.Info("notifier consumer closing", zap.Int64("lag", consumer.Lag()))
			_ = consumer.Close()
		}()

		store := repository.NewStore(dbx)
		w := worker.NewNotifier(dbx, consumer, repository.NewInquiriesRepository(dbx, store), disp)

		// tune knobs
		if cfg.Notifier.WorkerCount > 0 {
			w.Workers = cfg.Notifier.WorkerCount
		}
		if cfg.Notifier.BatchSize > 0 {
			w.BatchSize = cfg.Notifier.BatchSize
		}
		if cfg.Notifier.BatchWait > 0 {
			w.BatchWait = cfg.Notifier.BatchWait
		}

		// graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Log.Info("notifier started",
			zap.String("topic", inquiry.CreatedTopic),
			zap.String("group", cfg.Kafka.GroupID),
			zap.Int("providers", len(provs)),
			zap.Int("workers", w.Workers),
			zap.Int("batch_size", w.BatchSize),
			zap.Duration("batch_wait", w.BatchWait))

		return w.Run(ctx)
	},
}
