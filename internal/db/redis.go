package db

import (
	"context"
	"fmt"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects the session and rate limit store.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dial,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
