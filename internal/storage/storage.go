package storage

import (
	"context"
	"time"

	"scm-gateway/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks

// noinspection GoNameStartsWithPackageName
type StorageProvider interface {
	Close()
	Ping(ctx context.Context) error
	RunMigrations(ctx context.Context) error

	LookupBySerial(ctx context.Context, serialNumber string) (*models.LocalRecord, error)
	GetCertificate(ctx context.Context, requestID string) (*models.CanonicalCertificate, error)
	UpsertCertificate(ctx context.Context, cert models.CanonicalCertificate) error

	RecordSyncRun(ctx context.Context, run SyncRun) error
	GetLastSyncRun(ctx context.Context) (*SyncRun, error)
}

// SyncRun is the outcome of one synchronization pass.
type SyncRun struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	FullSync   bool      `json:"full_sync"`
	Received   int       `json:"received"`
	Emitted    int       `json:"emitted"`
	Unchanged  int       `json:"unchanged"`
	Skipped    int       `json:"skipped"`
	Stored     int       `json:"stored"`
	Error      string    `json:"error,omitempty"`
}
