// Package db opens the Postgres pool and applies the embedded schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// PoolConfig tunes the database/sql pool and the start-up wait for Postgres.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectTimeout bounds how long Open keeps retrying the first ping.
	ConnectTimeout time.Duration
	RetryInterval  time.Duration
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns <= 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 15 * time.Second
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = time.Second
	}
	return c
}

// Open returns a pool that has answered at least one ping. Postgres often comes up after
// the server in local stacks, so failed pings are retried until ConnectTimeout.
func Open(ctx context.Context, dsn string, cfg PoolConfig, logger *slog.Logger) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	cfg = cfg.withDefaults()
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForPing(ctx, conn, cfg, logger); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close database handle after ping error", slog.Any("error", closeErr))
		}
		return nil, err
	}
	return conn, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

func waitForPing(ctx context.Context, conn pinger, cfg PoolConfig, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	ticker := time.NewTicker(cfg.RetryInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := conn.PingContext(ctx)
		if err == nil {
			return nil
		}
		logger.Warn("database not reachable yet", slog.Int("attempt", attempt), slog.Any("error", err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database within %v: %w", cfg.ConnectTimeout, err)
		case <-ticker.C:
		}
	}
}
