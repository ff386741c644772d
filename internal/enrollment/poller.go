package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"scm-gateway/internal/config"
	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/utils"
)

// Collector downloads issued certificate material.
type Collector interface {
	Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error)
}

var errNoMaterial = errors.New("no certificate material returned")

// Poller waits for SCM to finish issuing a certificate: one settle delay, then
// up to retries download attempts with delay between them.
type Poller struct {
	collector Collector
	logger    *slog.Logger
	retries   int
	delay     time.Duration
	settle    time.Duration
}

func NewPoller(collector Collector, logger *slog.Logger, cfg config.CAConfig) *Poller {
	retries := cfg.PickupRetries
	if retries <= 0 {
		retries = config.DefaultCAConfig.PickupRetries
	}
	return &Poller{
		collector: collector,
		logger:    logger,
		retries:   retries,
		delay:     cfg.PickupDelay,
		settle:    cfg.PickupSettle,
	}
}

// Poll returns a complete result as soon as material is downloaded, or a
// pending approval result once every attempt has failed. Errors are reserved
// for failures that retrying cannot fix.
func (p *Poller) Poll(ctx context.Context, sslID int, subject string) (*models.EnrollmentResult, error) {
	details, err := p.Pickup(ctx, sslID, subject)
	if err != nil {
		return nil, err
	}

	if details == nil {
		return models.PendingApprovalResult(sslID,
			"Failed to pickup certificate. Check the SCM portal to determine if additional approval is required"), nil
	}

	p.logger.Info("successfully enrolled for certificate", "ssl_id", sslID, "subject", details.Subject)
	return &models.EnrollmentResult{
		RequestID:   strconv.Itoa(sslID),
		Certificate: utils.EncodeDER(details.Raw),
		Status:      models.StatusIssued,
		Outcome:     models.OutcomeComplete,
		Message:     fmt.Sprintf("Successfully enrolled for certificate %s", details.Subject),
	}, nil
}

// Pickup waits for the settle delay, then runs the download attempts. It returns
// nil details when they are exhausted.
func (p *Poller) Pickup(ctx context.Context, sslID int, subject string) (*models.IssuedCertificateDetails, error) {
	if p.settle > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.settle):
		}
	}
	return p.Download(ctx, sslID, subject)
}

// Download runs the download attempts for a certificate that is already issued.
func (p *Poller) Download(ctx context.Context, sslID int, subject string) (*models.IssuedCertificateDetails, error) {
	logger := p.logger.With("ssl_id", sslID, "subject", subject)

	attempts := 0
	var fatal error

	operation := func() (*models.IssuedCertificateDetails, error) {
		attempts++
		logger.Debug("attempting certificate pickup", "attempt", attempts, "max_attempts", p.retries)

		details, err := p.collector.Collect(ctx, sslID)
		if err != nil {
			if sectigo.IsNotReady(err) {
				return nil, err
			}
			fatal = err
			return nil, backoff.Permanent(err)
		}
		if details == nil || details.Subject == "" || len(details.Raw) == 0 {
			return nil, errNoMaterial
		}
		return details, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.delay), uint64(p.retries-1)),
		ctx,
	)

	details, err := backoff.RetryNotifyWithData(operation, policy, func(err error, next time.Duration) {
		logger.Debug("certificate not available yet", "attempt", attempts, "retry_in", next, "error", err)
	})

	switch {
	case err == nil:
		metrics.PickupAttempts.WithLabelValues(metrics.PickupResultComplete).Observe(float64(attempts))
		return details, nil
	case fatal != nil:
		return nil, fmt.Errorf("certificate pickup failed: %w", fatal)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	}

	metrics.PickupAttempts.WithLabelValues(metrics.PickupResultPending).Observe(float64(attempts))
	logger.Info("certificate pickup attempts exhausted", "attempts", attempts)
	return nil, nil
}
