package model

import "time"

type OutboxEvent struct {
	ID          int64      `db:"id"`
	Aggregate   string     `db:"aggregate"`    // e.g. "inquiry"
	AggregateID string     `db:"aggregate_id"` // inquiry.ID
	Topic       string     `db:"topic"`
	Payload     []byte     `db:"payload"`
	Attempts    int        `db:"attempts"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
}
