package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/config"
)

// OpenMySQL connects the site database and waits for one successful ping.
// Timestamps are always scanned as UTC time.Time.
func OpenMySQL(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mysql: empty dsn")
	}
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC

	dbx, err := sqlx.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, err
	}
	applyPool(dbx, cfg)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := dbx.PingContext(pingCtx); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("mysql: ping %s: %w", mc.Addr, err)
	}
	return dbx, nil
}

func applyPool(dbx *sqlx.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		dbx.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		dbx.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		dbx.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbx.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}
