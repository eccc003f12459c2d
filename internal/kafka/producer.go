package kafka

import (
	"context"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/segmentio/kafka-go"
)

// Producer publishes outbox events. Each message carries its own topic, and
// messages with the same key (the inquiry id) land on the same partition.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	return &Producer{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}}
}

func (p *Producer) Publish(ctx context.Context, msgs ...Message) error {
	return p.w.WriteMessages(ctx, msgs...)
}

func (p *Producer) Close() error { return p.w.Close() }
