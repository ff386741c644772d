package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
)

// DefaultQueueCapacity bounds the queue between the lister and the reconciler.
const DefaultQueueCapacity = 100

type SyncOptions struct {
	Filter        Filter
	PageSize      int
	ForceFullSync bool
}

type Synchronizer struct {
	lister        *Lister
	reconciler    *Reconciler
	logger        *slog.Logger
	queueCapacity int
}

func NewSynchronizer(lister *Lister, reconciler *Reconciler, logger *slog.Logger, queueCapacity int) *Synchronizer {
	if queueCapacity <= 0 {
		queueCapacity = DefaultQueueCapacity
	}
	return &Synchronizer{
		lister:        lister,
		reconciler:    reconciler,
		logger:        logger,
		queueCapacity: queueCapacity,
	}
}

// Synchronize lists the remote inventory and streams the records the local store
// needs onto out, closing out exactly once on every path. Records already
// reconciled when the listing fails are still delivered; the listing error is
// returned afterwards.
func (s *Synchronizer) Synchronize(ctx context.Context, out chan<- models.CanonicalCertificate, opts SyncOptions) (Stats, error) {
	defer close(out)

	start := time.Now()
	s.logger.Info("begin paging certificate list", "page_size", opts.PageSize, "force_full_sync", opts.ForceFullSync)

	producerCtx, cancelProducer := context.WithCancel(ctx)
	defer cancelProducer()

	queue := make(chan models.RemoteCertificate, s.queueCapacity)
	producerDone := make(chan error, 1)
	go func() {
		producerDone <- s.lister.List(producerCtx, queue, opts.Filter, opts.PageSize)
	}()

	stats, reconcileErr := s.reconciler.Reconcile(ctx, queue, out, opts.ForceFullSync)
	if reconcileErr != nil {
		cancelProducer()
	}
	listErr := <-producerDone

	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	switch {
	case ctx.Err() != nil:
		s.logger.Warn("synchronization cancelled", "emitted", stats.Emitted)
		return stats, ctx.Err()
	case reconcileErr != nil:
		s.logger.Error("synchronization failed", "error", reconcileErr, "emitted", stats.Emitted)
		return stats, fmt.Errorf("reconcile failed: %w", reconcileErr)
	case listErr != nil && !isCancellation(listErr):
		s.logger.Error("synchronization finished with partial results", "error", listErr, "emitted", stats.Emitted)
		return stats, fmt.Errorf("certificate listing aborted: %w", listErr)
	}

	metrics.SyncLastSuccess.SetToCurrentTime()
	s.logger.Info("adding certificates to queue is complete",
		"received", stats.Received,
		"emitted", stats.Emitted,
		"unchanged", stats.Unchanged,
		"skipped", stats.Skipped,
		"duration", time.Since(start))

	return stats, nil
}
