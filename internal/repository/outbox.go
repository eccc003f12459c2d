package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/model"
)

// OutboxRepository defines persistence methods for the outbox table.
type OutboxRepository interface {
	// Insert writes a single outbox event. If tx is nil, it will open/commit
	// an internal transaction; otherwise it uses the given tx.
	Insert(ctx context.Context, tx *sqlx.Tx, aggregate, aggregateID, topic string, payload []byte) error
	FetchUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []int64) error
	BumpAttempts(ctx context.Context, ids []int64) error
}

// OutboxRepositoryImpl is a sqlx-backed implementation.
type OutboxRepositoryImpl struct {
	db *sqlx.DB
}

// NewOutboxRepository constructs an OutboxRepositoryImpl.
func NewOutboxRepository(db *sqlx.DB) *OutboxRepositoryImpl {
	return &OutboxRepositoryImpl{db: db}
}

var _ OutboxRepository = (*OutboxRepositoryImpl)(nil)

// Insert adds an event row to outbox. The relay worker publishes it to Kafka
// based on the `topic` column.
func (r *OutboxRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, aggregate, aggregateID, topic string, payload []byte) error {
	const q = `
		INSERT INTO outbox (aggregate, aggregate_id, topic, payload, created_at)
		VALUES (?, ?, ?, ?, NOW(3))
	`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, aggregate, aggregateID, topic, payload)

		return err
	})
}

// FetchUnpublished returns the oldest unpublished events.
func (r *OutboxRepositoryImpl) FetchUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []model.OutboxEvent
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, aggregate, aggregate_id, topic, payload, attempts, published_at, created_at
		  FROM outbox
		 WHERE published_at IS NULL
		 ORDER BY id
		 LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OutboxRepositoryImpl) MarkPublished(ctx context.Context, ids []int64) error {
	return r.updateIDs(ctx, `UPDATE outbox SET published_at = NOW(3) WHERE id IN (?)`, ids)
}

func (r *OutboxRepositoryImpl) BumpAttempts(ctx context.Context, ids []int64) error {
	return r.updateIDs(ctx, `UPDATE outbox SET attempts = attempts + 1 WHERE id IN (?)`, ids)
}

func (r *OutboxRepositoryImpl) updateIDs(ctx context.Context, base string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(base, ids)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	return err
}
