package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/kafka"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"go.uber.org/zap"
)

// Source yields Kafka messages and takes commits for them.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

// Sender delivers one inquiry notification.
type Sender interface {
	Notify(ctx context.Context, env model.InquiryEnvelope) error
}

// Notifier:
// - fetches inquiry envelopes from Kafka,
// - sends them through the dispatcher,
// - batches notification_status updates by size or time.
type Notifier struct {
	DB        *sqlx.DB
	Source    Source
	Inquiries repository.InquiriesRepository
	Send      Sender

	Workers   int
	BatchSize int
	BatchWait time.Duration
}

func NewNotifier(db *sqlx.DB, src Source, inquiries repository.InquiriesRepository, send Sender) *Notifier {
	return &Notifier{
		DB:        db,
		Source:    src,
		Inquiries: inquiries,
		Send:      send,
		Workers:   4,
		BatchSize: 50,
		BatchWait: 500 * time.Millisecond,
	}
}

type statusUpdate struct {
	id     string
	status model.NotificationStatus
}

// Run blocks until ctx is cancelled and the pending batch is flushed.
func (w *Notifier) Run(ctx context.Context) error {
	if w.Source == nil || w.Send == nil || w.Inquiries == nil {
		return errors.New("notifier: missing dependency")
	}
	if w.Workers <= 0 {
		w.Workers = 4
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 50
	}
	if w.BatchWait <= 0 {
		w.BatchWait = 500 * time.Millisecond
	}

	msgCh := make(chan kafka.Message, w.Workers*2)
	updates := make(chan statusUpdate, w.BatchSize*2)

	go func() {
		defer close(msgCh)
		for {
			m, err := w.Source.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Log.Warn("notifier: kafka fetch failed", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(200 * time.Millisecond):
				}
				continue
			}
			select {
			case msgCh <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range msgCh {
				w.processOne(ctx, m, updates)
			}
		}()
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		w.runBatchWriter(updates)
	}()

	wg.Wait()
	close(updates)
	<-writerDone
	return nil
}

func (w *Notifier) processOne(ctx context.Context, m kafka.Message, out chan<- statusUpdate) {
	var env model.InquiryEnvelope
	if err := json.Unmarshal(m.Value, &env); err != nil || env.ID == "" {
		// poison message: commit and skip
		_ = w.Source.Commit(ctx, m)
		logger.Log.Warn("notifier: bad envelope", zap.ByteString("key", m.Key), zap.Error(err))
		return
	}

	status := model.NotificationSent
	if err := w.Send.Notify(ctx, env); err != nil {
		if ctx.Err() != nil {
			// shutting down: leave the offset uncommitted so it is redelivered
			return
		}
		status = model.NotificationFailed
		logger.Log.Warn("notifier: send failed", zap.String("inquiry_id", env.ID), zap.Error(err))
	}
	metrics.NotificationsTotal.WithLabelValues(status.String()).Inc()
	out <- statusUpdate{id: env.ID, status: status}

	if err := w.Source.Commit(ctx, m); err != nil {
		logger.Log.Warn("notifier: commit failed", zap.Error(err))
	}
}

// runBatchWriter flushes on size, on tick and once more when in is closed.
// It uses a background context so the last flush survives shutdown.
func (w *Notifier) runBatchWriter(in <-chan statusUpdate) {
	tick := time.NewTicker(w.BatchWait)
	defer tick.Stop()

	var sent, failed []string
	flush := func() {
		if len(sent) == 0 && len(failed) == 0 {
			return
		}
		if err := w.flush(context.Background(), sent, failed); err != nil {
			logger.Log.Error("notifier: flush failed",
				zap.Int("sent", len(sent)), zap.Int("failed", len(failed)), zap.Error(err))
		} else {
			logger.Log.Info("notifier: flushed", zap.Int("sent", len(sent)), zap.Int("failed", len(failed)))
		}
		sent, failed = sent[:0], failed[:0]
	}

	for {
		select {
		case u, ok := <-in:
			if !ok {
				flush()
				return
			}
			switch u.status {
			case model.NotificationSent:
				sent = append(sent, u.id)
			case model.NotificationFailed:
				failed = append(failed, u.id)
			}
			if len(sent)+len(failed) >= w.BatchSize {
				flush()
			}
		case <-tick.C:
			flush()
		}
	}
}

func (w *Notifier) flush(ctx context.Context, sent, failed []string) error {
	tx, err := w.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := w.Inquiries.BatchUpdateNotification(ctx, tx, sent, model.NotificationSent); err != nil {
		return err
	}
	if err := w.Inquiries.BatchUpdateNotification(ctx, tx, failed, model.NotificationFailed); err != nil {
		return err
	}
	return tx.Commit()
}
