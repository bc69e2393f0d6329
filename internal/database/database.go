package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig carries the connection pool tuning for one service. The user
// and blog services each connect with their own settings from the
// environment.
type PoolConfig struct {
	URL               string
	MaxConns          int32
	MinConns          int32
	ConnLifetime      time.Duration
	ConnIdleTime      time.Duration
	HealthCheckPeriod time.Duration
}

func (pc PoolConfig) pgxConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(pc.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = pc.MinConns
	cfg.MaxConnLifetime = pc.ConnLifetime
	cfg.MaxConnIdleTime = pc.ConnIdleTime
	cfg.HealthCheckPeriod = pc.HealthCheckPeriod

	return cfg, nil
}

type DB struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, pc PoolConfig) (*DB, error) {
	cfg, err := pc.pgxConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database pool ready",
		"max_conns", pc.MaxConns,
		"min_conns", pc.MinConns,
		"conn_lifetime", pc.ConnLifetime,
	)

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
