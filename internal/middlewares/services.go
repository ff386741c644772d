package middlewares

import (
	"context"

	"scm-gateway/internal/gateway"
	"scm-gateway/internal/models"
)

//go:generate mockgen -source=services.go -destination=../mocks/services.go -package=mocks

// CertificateAuthority is the set of gateway operations the API exposes.
type CertificateAuthority interface {
	Ping(ctx context.Context) error
	Enroll(ctx context.Context, req gateway.EnrollRequest) (*models.EnrollmentResult, error)
	Revoke(ctx context.Context, requestID string, reasonCode int) (models.CertificateStatus, error)
	GetSingleRecord(ctx context.Context, requestID string) (*models.CanonicalCertificate, error)
	ProductIDs(ctx context.Context) ([]string, error)
	ValidateProduct(ctx context.Context, productID string, params map[string]string) error
}

// SyncTrigger schedules synchronization passes outside the regular interval.
type SyncTrigger interface {
	Trigger(fullSync bool) bool
	Running() bool
}

// CacheInvalidator drops the cached account metadata.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) int
}
