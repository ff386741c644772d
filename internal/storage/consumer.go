package storage

import (
	"context"
	"log/slog"

	"scm-gateway/internal/models"
)

// CertificateWriter persists reconciled records.
type CertificateWriter interface {
	UpsertCertificate(ctx context.Context, cert models.CanonicalCertificate) error
}

// Consume writes every record received on in until in is closed. It stops at
// the first failed write and returns it; the caller is expected to cancel the
// producer and drain in.
func Consume(ctx context.Context, w CertificateWriter, in <-chan models.CanonicalCertificate, logger *slog.Logger) (int, error) {
	stored := 0
	for cert := range in {
		if err := w.UpsertCertificate(ctx, cert); err != nil {
			logger.Error("failed to store certificate", "request_id", cert.RequestID, "error", err)
			return stored, err
		}
		stored++
		logger.Debug("stored certificate", "request_id", cert.RequestID, "status", cert.Status)
	}
	return stored, nil
}
