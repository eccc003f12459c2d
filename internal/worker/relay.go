package worker

import (
	"context"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/kafka"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"go.uber.org/zap"
)

// Publisher writes messages to Kafka.
type Publisher interface {
	Publish(ctx context.Context, msgs ...kafka.Message) error
}

// Relay moves unpublished outbox rows to Kafka.
type Relay struct {
	Outbox       repository.OutboxRepository
	Publisher    Publisher
	BatchSize    int
	PollInterval time.Duration
}

func NewRelay(outbox repository.OutboxRepository, pub Publisher) *Relay {
	return &Relay{Outbox: outbox, Publisher: pub, BatchSize: 100, PollInterval: time.Second}
}

// Run polls until ctx is done. A full batch is followed immediately by the
// next poll.
func (r *Relay) Run(ctx context.Context) error {
	if r.BatchSize <= 0 {
		r.BatchSize = 100
	}
	if r.PollInterval <= 0 {
		r.PollInterval = time.Second
	}

	tick := time.NewTicker(r.PollInterval)
	defer tick.Stop()

	for {
		n, err := r.RelayOnce(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Log.Warn("relay: batch failed", zap.Error(err))
		}
		if n == r.BatchSize && err == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// RelayOnce publishes one batch. On publish failure the batch's attempts are
// bumped and the rows stay unpublished for the next poll.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.Outbox.FetchUnpublished(ctx, r.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, kafka.Message{
			Topic: e.Topic,
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
		})
		ids = append(ids, e.ID)
	}

	if err := r.Publisher.Publish(ctx, msgs...); err != nil {
		if berr := r.Outbox.BumpAttempts(ctx, ids); berr != nil {
			logger.Log.Error("relay: bump attempts failed", zap.Error(berr))
		}
		return 0, err
	}
	if err := r.Outbox.MarkPublished(ctx, ids); err != nil {
		return 0, err
	}
	metrics.NotificationsTotal.WithLabelValues("published").Add(float64(len(ids)))
	return len(ids), nil
}
