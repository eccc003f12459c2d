package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store is the data access facade: one-shot reads, counts and lookups against
// a named collection. Nothing is retried.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Select loads every row matching q into dest, a pointer to a slice.
func (s *Store) Select(ctx context.Context, dest any, c Collection, q Query) error {
	query, args, err := buildSelect(c, q)
	if err != nil {
		return err
	}
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("select %s: %w", c, err)
	}
	return nil
}

// Get loads at most one row into dest. Zero rows is reported as found=false,
// not as an error.
func (s *Store) Get(ctx context.Context, dest any, c Collection, q Query) (bool, error) {
	query, args, err := buildSelect(c, q.Take(1))
	if err != nil {
		return false, err
	}
	err = s.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", c, err)
	}
	return true, nil
}

// Count returns the number of rows matching q.
func (s *Store) Count(ctx context.Context, c Collection, q Query) (int64, error) {
	query, args, err := buildCount(c, q)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", c, err)
	}
	return n, nil
}

// withTx runs fn in the provided tx, or starts a new transaction when tx is nil.
func withTx(ctx context.Context, db *sqlx.DB, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	t, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}

	return t.Commit()
}
