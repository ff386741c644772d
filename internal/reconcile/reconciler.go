package reconcile

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
	"scm-gateway/internal/utils"
)

// RecordLookup finds what the local store already holds for a serial number.
// A nil record with a nil error means the serial is unknown.
type RecordLookup interface {
	LookupBySerial(ctx context.Context, serialNumber string) (*models.LocalRecord, error)
}

// MaterialSource downloads issued certificate material.
type MaterialSource interface {
	Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error)
}

type Reconciler struct {
	lookup       RecordLookup
	material     MaterialSource
	logger       *slog.Logger
	offerTimeout time.Duration
}

func NewReconciler(lookup RecordLookup, material MaterialSource, logger *slog.Logger, offerTimeout time.Duration) *Reconciler {
	if offerTimeout <= 0 {
		offerTimeout = DefaultOfferTimeout
	}
	return &Reconciler{
		lookup:       lookup,
		material:     material,
		logger:       logger,
		offerTimeout: offerTimeout,
	}
}

// Stats counts what a reconcile pass did with the records it received.
type Stats struct {
	Received  int
	Emitted   int
	Unchanged int
	Skipped   int
}

// Reconcile drains in until it is closed or ctx is done, emitting a canonical
// record onto out for every remote certificate the local store needs. It does
// not close out. Classification and lookup failures stop the pass.
func (r *Reconciler) Reconcile(ctx context.Context, in <-chan models.RemoteCertificate, out chan<- models.CanonicalCertificate, forceFullSync bool) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("synchronization cancelled, stopping reconcile", "received", stats.Received)
			return stats, err
		}

		var (
			remote models.RemoteCertificate
			ok     bool
		)
		select {
		case <-ctx.Done():
			continue
		case remote, ok = <-in:
		}
		if !ok {
			return stats, nil
		}
		stats.Received++

		record, result, err := r.reconcileOne(ctx, remote, forceFullSync)
		if err != nil {
			return stats, err
		}

		if record == nil {
			if result == metrics.SyncResultUnchanged {
				stats.Unchanged++
			} else {
				stats.Skipped++
			}
			metrics.SyncRecordsReconciled.WithLabelValues(result).Inc()
			continue
		}

		if !offer(ctx, out, *record, r.offerTimeout, func() {
			r.logger.Debug("output queue full, retrying", "request_id", record.RequestID)
		}) {
			continue
		}

		stats.Emitted++
		metrics.SyncRecordsReconciled.WithLabelValues(metrics.SyncResultEmitted).Inc()
		r.logger.Debug("certificate queued for synchronization", "request_id", record.RequestID, "common_name", record.CommonName)
	}
}

func (r *Reconciler) reconcileOne(ctx context.Context, remote models.RemoteCertificate, forceFullSync bool) (*models.CanonicalCertificate, string, error) {
	status, err := models.ClassifyStatusForID(remote.SSLID, remote.Status)
	if err != nil {
		return nil, "", err
	}

	requestID := strconv.Itoa(remote.SSLID)

	// serial number is blank until the certificate is issued
	if remote.SerialNumber != "" {
		existing, err := r.lookup.LookupBySerial(ctx, remote.SerialNumber)
		if err != nil {
			return nil, "", err
		}

		if existing != nil {
			if existing.Status == status && !forceFullSync {
				r.logger.Debug("certificate already synced, skipping", "ssl_id", remote.SSLID, "common_name", remote.CommonName)
				return nil, metrics.SyncResultUnchanged, nil
			}
			r.logger.Debug("syncing known certificate",
				"ssl_id", remote.SSLID,
				"request_id", existing.RequestID,
				"status_changed", existing.Status != status,
				"forced", forceFullSync)
			requestID = existing.RequestID
		}
	}

	if remote.SerialNumber == "" || remote.CommonName == "" {
		r.logger.Debug("certificate data unavailable, skipping", "ssl_id", remote.SSLID, "status", remote.Status)
		return nil, metrics.SyncResultSkipped, nil
	}

	details, err := r.material.Collect(ctx, remote.SSLID)
	if err != nil || details == nil || len(details.Raw) == 0 {
		r.logger.Debug("certificate material unavailable, skipping", "ssl_id", remote.SSLID, "error", err)
		return nil, metrics.SyncResultSkipped, nil
	}

	record := models.NewCanonicalCertificate(requestID, remote, status, utils.EncodeDER(details.Raw))
	return &record, metrics.SyncResultEmitted, nil
}
