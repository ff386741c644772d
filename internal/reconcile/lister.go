package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
)

// DefaultOfferTimeout bounds a single attempt to push onto a full queue.
const DefaultOfferTimeout = 50 * time.Millisecond

// CertificateSource pages through the remote inventory.
type CertificateSource interface {
	GetCertificate(ctx context.Context, sslID int) (*models.RemoteCertificate, error)
	PageCertificates(ctx context.Context, position, size int, filter sectigo.Filter) ([]models.RemoteCertificate, error)
}

// Filter restricts a listing to entries where Key matches one of Values.
// Each value is listed separately, in order.
type Filter struct {
	Key    string
	Values []string
}

// ProfileFilter filters by ssl profile id.
func ProfileFilter(profileIDs []string) Filter {
	if len(profileIDs) == 0 {
		return Filter{}
	}
	return Filter{Key: sectigo.FilterSSLTypeID, Values: profileIDs}
}

type Lister struct {
	source       CertificateSource
	logger       *slog.Logger
	offerTimeout time.Duration
}

func NewLister(source CertificateSource, logger *slog.Logger, offerTimeout time.Duration) *Lister {
	if offerTimeout <= 0 {
		offerTimeout = DefaultOfferTimeout
	}
	return &Lister{
		source:       source,
		logger:       logger,
		offerTimeout: offerTimeout,
	}
}

// List pushes the full detail record of every matching inventory entry onto out
// and closes out when done. It returns nil when the inventory is exhausted, the
// context error when cancelled, and the cause when a page could not be fetched.
func (l *Lister) List(ctx context.Context, out chan<- models.RemoteCertificate, filter Filter, pageSize int) error {
	defer close(out)

	if pageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	if filter.Key == "" || len(filter.Values) == 0 {
		return l.listOne(ctx, out, sectigo.Filter{}, pageSize)
	}

	for _, value := range filter.Values {
		if err := l.listOne(ctx, out, sectigo.Filter{Key: filter.Key, Value: value}, pageSize); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lister) listOne(ctx context.Context, out chan<- models.RemoteCertificate, filter sectigo.Filter, pageSize int) error {
	logger := l.logger.With("filter", filter.Key, "value", filter.Value)
	position := 0

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("certificate listing cancelled", "position", position)
			return err
		}

		logger.Debug("requesting certificate page", "position", position, "size", pageSize)
		page, err := l.source.PageCertificates(ctx, position, pageSize, filter)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				logger.Info("certificate listing cancelled", "position", position)
				return ctxErr
			}
			logger.Error("certificate listing interrupted", "position", position, "error", err)
			return fmt.Errorf("failed to fetch page at position %d: %w", position, err)
		}

		pushed, skipped := 0, 0
		for _, entry := range page {
			detail, err := l.source.GetCertificate(ctx, entry.SSLID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("failed to get certificate details, skipping", "ssl_id", entry.SSLID, "error", err)
				metrics.SyncDetailErrors.Inc()
				skipped++
				continue
			}

			if !l.offer(ctx, out, *detail) {
				return ctx.Err()
			}
			metrics.SyncRecordsListed.Inc()
			pushed++
		}

		position += pushed + skipped
		logger.Debug("certificate page processed", "pushed", pushed, "skipped", skipped)

		if len(page) < pageSize {
			return nil
		}
	}
}

// offer retries a timed push until it is accepted or ctx is done.
func (l *Lister) offer(ctx context.Context, out chan<- models.RemoteCertificate, cert models.RemoteCertificate) bool {
	return offer(ctx, out, cert, l.offerTimeout, func() {
		l.logger.Debug("queue full, retrying", "ssl_id", cert.SSLID)
	})
}

func offer[T any](ctx context.Context, out chan<- T, v T, timeout time.Duration, onBlocked func()) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case out <- v:
			return true
		case <-ctx.Done():
			return false
		case <-timer.C:
			onBlocked()
			timer.Reset(timeout)
		}
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
