package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"scm-gateway/internal/models"
	"scm-gateway/internal/reconcile"
	"scm-gateway/internal/storage"
)

// Syncer streams reconciled records onto out and closes it.
type Syncer interface {
	Synchronize(ctx context.Context, out chan<- models.CanonicalCertificate, fullSync bool) (reconcile.Stats, error)
}

// SyncJob periodically synchronizes the remote inventory into the local store.
type SyncJob struct {
	syncer        Syncer
	store         storage.StorageProvider
	interval      time.Duration
	queueCapacity int
	logger        *slog.Logger
	running       atomic.Bool
	trigger       chan bool
}

func NewSyncJob(syncer Syncer, store storage.StorageProvider, interval time.Duration, queueCapacity int, logger *slog.Logger) *SyncJob {
	if queueCapacity <= 0 {
		queueCapacity = reconcile.DefaultQueueCapacity
	}
	return &SyncJob{
		syncer:        syncer,
		store:         store,
		interval:      interval,
		queueCapacity: queueCapacity,
		logger:        logger,
		trigger:       make(chan bool, 1),
	}
}

func (j *SyncJob) Name() string {
	return "certificate_sync"
}

func (j *SyncJob) RequiresLeadership() bool {
	return true
}

func (j *SyncJob) Interval() time.Duration {
	return j.interval
}

// Trigger requests a synchronization outside the schedule. It returns false when one is already queued.
func (j *SyncJob) Trigger(fullSync bool) bool {
	select {
	case j.trigger <- fullSync:
		return true
	default:
		return false
	}
}

func (j *SyncJob) Running() bool {
	return j.running.Load()
}

func (j *SyncJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		j.logger.Error("certificate sync not started: ticker interval must not be zero")
		return fmt.Errorf("non-positive ticker interval: %s", j.interval)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Debug("starting scheduled certificate synchronization", "interval", j.interval)
	j.runLogged(ctx, false)

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("scheduled certificate synchronization canceled")
			return ctx.Err()
		case <-ticker.C:
			j.runLogged(ctx, false)
		case full := <-j.trigger:
			j.runLogged(ctx, full)
		}
	}
}

func (j *SyncJob) runLogged(ctx context.Context, fullSync bool) {
	run, err := j.RunOnce(ctx, fullSync)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Error(fmt.Sprintf("certificate synchronization failed, trying again in %s", j.interval), "error", err, "stored", run.Stored)
		}
		return
	}
	j.logger.Info("certificate synchronization complete",
		"received", run.Received,
		"stored", run.Stored,
		"unchanged", run.Unchanged,
		"skipped", run.Skipped,
		"duration", run.FinishedAt.Sub(run.StartedAt))
}

// RunOnce runs one synchronization pass, stores the records it produces and
// records the outcome. Records stored before a failure stay stored.
func (j *SyncJob) RunOnce(ctx context.Context, fullSync bool) (storage.SyncRun, error) {
	if !j.running.CompareAndSwap(false, true) {
		return storage.SyncRun{}, ErrSyncInProgress
	}
	defer j.running.Store(false)

	run := storage.SyncRun{StartedAt: time.Now().UTC(), FullSync: fullSync}

	syncCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		stats reconcile.Stats
		err   error
	}

	queue := make(chan models.CanonicalCertificate, j.queueCapacity)
	done := make(chan outcome, 1)
	go func() {
		stats, err := j.syncer.Synchronize(syncCtx, queue, fullSync)
		done <- outcome{stats: stats, err: err}
	}()

	stored, storeErr := storage.Consume(syncCtx, j.store, queue, j.logger)
	if storeErr != nil {
		cancel()
		for range queue {
		}
	}
	result := <-done

	run.FinishedAt = time.Now().UTC()
	run.Received = result.stats.Received
	run.Emitted = result.stats.Emitted
	run.Unchanged = result.stats.Unchanged
	run.Skipped = result.stats.Skipped
	run.Stored = stored

	var err error
	switch {
	case storeErr != nil:
		err = fmt.Errorf("failed to store synchronized certificates: %w", storeErr)
	case result.err != nil:
		err = result.err
	}
	if err != nil {
		run.Error = err.Error()
	}

	recordCtx, cancelRecord := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancelRecord()
	if recErr := j.store.RecordSyncRun(recordCtx, run); recErr != nil {
		j.logger.Warn("failed to record sync run", "error", recErr)
	}

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return run, ctx.Err()
	}
	return run, err
}
