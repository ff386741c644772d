package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"scm-gateway/internal/models"
)

// LookupBySerial returns the stored record for a serial number, or nil when there is none.
func (p *DatabaseProvider) LookupBySerial(ctx context.Context, serialNumber string) (*models.LocalRecord, error) {
	query := `
		SELECT request_id, status
		FROM certificates
		WHERE serial_number = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var (
		record    models.LocalRecord
		rawStatus string
	)
	err := p.pool.QueryRow(ctx, query, serialNumber).Scan(&record.RequestID, &rawStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up serial number %s: %w", serialNumber, err)
	}

	record.Status, err = decodeStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", record.RequestID, err)
	}
	return &record, nil
}

// GetCertificate returns a stored record by request id.
func (p *DatabaseProvider) GetCertificate(ctx context.Context, requestID string) (*models.CanonicalCertificate, error) {
	query := `
		SELECT request_id, product_id, serial_number, common_name, status, certificate, revocation_reason, revocation_date
		FROM certificates
		WHERE request_id = $1
	`

	var (
		cert      models.CanonicalCertificate
		rawStatus string
		revokedAt *time.Time
	)
	err := p.pool.QueryRow(ctx, query, requestID).Scan(
		&cert.RequestID,
		&cert.ProductID,
		&cert.SerialNumber,
		&cert.CommonName,
		&rawStatus,
		&cert.Certificate,
		&cert.RevocationReason,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to get certificate %s: %w", requestID, err)
	}

	if cert.Status, err = decodeStatus(rawStatus); err != nil {
		return nil, fmt.Errorf("record %s: %w", requestID, err)
	}
	if revokedAt != nil {
		cert.RevocationDate = *revokedAt
	}
	return &cert, nil
}

// UpsertCertificate stores a reconciled record, always writing the canonical status name.
func (p *DatabaseProvider) UpsertCertificate(ctx context.Context, cert models.CanonicalCertificate) error {
	query := `
		INSERT INTO certificates (request_id, product_id, serial_number, common_name, status, certificate, revocation_reason, revocation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (request_id)
		DO UPDATE SET
			product_id = EXCLUDED.product_id,
			serial_number = EXCLUDED.serial_number,
			common_name = EXCLUDED.common_name,
			status = EXCLUDED.status,
			certificate = CASE WHEN EXCLUDED.certificate = '' THEN certificates.certificate ELSE EXCLUDED.certificate END,
			revocation_reason = EXCLUDED.revocation_reason,
			revocation_date = EXCLUDED.revocation_date,
			updated_at = CURRENT_TIMESTAMP
	`

	var revokedAt *time.Time
	if cert.Status == models.StatusRevoked {
		revokedAt = &cert.RevocationDate
	}

	_, err := p.pool.Exec(ctx, query,
		cert.RequestID,
		cert.ProductID,
		cert.SerialNumber,
		cert.CommonName,
		string(cert.Status),
		cert.Certificate,
		cert.RevocationReason,
		revokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert certificate %s: %w", cert.RequestID, err)
	}
	return nil
}
