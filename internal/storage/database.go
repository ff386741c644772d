package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"scm-gateway/internal/config"
)

type DatabaseProvider struct {
	pool *pgxpool.Pool
}

func NewDatabaseProvider(ctx context.Context, cfg *config.Config) (*DatabaseProvider, error) {
	poolCfg, err := pgxpool.ParseConfig(GetConnectionStringFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseProvider{pool: dbPool}, nil
}

func (p *DatabaseProvider) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *DatabaseProvider) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS certificates (
		request_id        TEXT PRIMARY KEY,
		product_id        TEXT NOT NULL DEFAULT '',
		serial_number     TEXT NOT NULL DEFAULT '',
		common_name       TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL,
		certificate       TEXT NOT NULL DEFAULT '',
		revocation_reason INTEGER NOT NULL,
		revocation_date   TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_certificates_serial_number ON certificates (serial_number)`,
	`CREATE TABLE IF NOT EXISTS sync_runs (
		id          BIGSERIAL PRIMARY KEY,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		full_sync   BOOLEAN NOT NULL,
		received    INTEGER NOT NULL,
		emitted     INTEGER NOT NULL,
		unchanged   INTEGER NOT NULL,
		skipped     INTEGER NOT NULL,
		stored      INTEGER NOT NULL,
		error       TEXT NOT NULL DEFAULT ''
	)`,
}

// RunMigrations creates the tables the gateway needs if they do not exist yet.
func (p *DatabaseProvider) RunMigrations(ctx context.Context) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	for i, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
