package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps admin sessions in redis as token -> admin id with a TTL.
type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "sess:"
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) key(token string) string { return s.prefix + token }

// Create opens a session for adminID and returns its token.
func (s *Store) Create(ctx context.Context, adminID int64) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(token), strconv.FormatInt(adminID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup returns the admin id bound to token; ok is false for unknown or
// expired tokens.
func (s *Store) Lookup(ctx context.Context, token string) (int64, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	v, err := s.rdb.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, s.key(token)).Err()
}
