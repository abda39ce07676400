// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironlab/nfl-stats-etl/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or SUPABASE_DB_URL must be set")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// ServerVersion returns the Postgres version string, for the check command.
func (p *Pool) ServerVersion(ctx context.Context) (string, error) {
	var v string
	if err := p.QueryRow(ctx, "server_version").Scan(&v); err != nil {
		return "", fmt.Errorf("server version: %w", err)
	}
	return v, nil
}

// registerPreparedStatements registers the statements the pipeline uses on
// every run. Prepared statements eliminate parse overhead on repeat use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	// Only statements that are valid before the schema exists belong here:
	// AfterConnect runs on every connection, including the one that first
	// applies schema.sql.
	stmts := map[string]string{
		"health_check":   "SELECT 1",
		"server_version": "SELECT version()",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
