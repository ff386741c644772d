package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (p *DatabaseProvider) RecordSyncRun(ctx context.Context, run SyncRun) error {
	query := `
		INSERT INTO sync_runs (started_at, finished_at, full_sync, received, emitted, unchanged, skipped, stored, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := p.pool.Exec(ctx, query,
		run.StartedAt, run.FinishedAt, run.FullSync,
		run.Received, run.Emitted, run.Unchanged, run.Skipped, run.Stored,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// GetLastSyncRun returns the most recent sync run, or nil when none has been recorded.
func (p *DatabaseProvider) GetLastSyncRun(ctx context.Context) (*SyncRun, error) {
	query := `
		SELECT id, started_at, finished_at, full_sync, received, emitted, unchanged, skipped, stored, error
		FROM sync_runs
		ORDER BY id DESC
		LIMIT 1
	`

	var run SyncRun
	err := p.pool.QueryRow(ctx, query).Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.FullSync,
		&run.Received,
		&run.Emitted,
		&run.Unchanged,
		&run.Skipped,
		&run.Stored,
		&run.Error,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last sync run: %w", err)
	}
	return &run, nil
}
