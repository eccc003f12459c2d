package kafka

import (
	"context"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/segmentio/kafka-go"
)

type Message = kafka.Message

// Consumer reads one topic as part of a consumer group. Nothing is committed
// implicitly; callers commit each message once it is handled.
type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{r: kafka.NewReader(readerConfig(cfg, topic))}
}

func readerConfig(cfg config.KafkaConfig, topic string) kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          topic,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		CommitInterval: time.Duration(cfg.CommitInterval) * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		StartOffset:    kafka.FirstOffset,
	}
	if rc.GroupID == "" {
		rc.GroupID = "meki-notifier"
	}
	if rc.MinBytes <= 0 {
		rc.MinBytes = 1 << 10
	}
	if rc.MaxBytes <= 0 {
		rc.MaxBytes = 10 << 20
	}
	if rc.CommitInterval <= 0 {
		rc.CommitInterval = time.Second
	}
	return rc
}

func (c *Consumer) Fetch(ctx context.Context) (Message, error) {
	return c.r.FetchMessage(ctx)
}

func (c *Consumer) Commit(ctx context.Context, m Message) error {
	return c.r.CommitMessages(ctx, m)
}

// Lag is the reader's last known lag for logging on shutdown.
func (c *Consumer) Lag() int64 { return c.r.Stats().Lag }

func (c *Consumer) Close() error { return c.r.Close() }
