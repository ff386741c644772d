package enrollment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scm-gateway/internal/config"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/testutil"
)

// scriptedCollector fails a fixed number of times before returning material.
type scriptedCollector struct {
	mu       sync.Mutex
	failures int
	failWith error
	calls    int
}

func (s *scriptedCollector) Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return nil, s.failWith
	}
	return &models.IssuedCertificateDetails{Subject: "CN=a.com", CommonName: "a.com", Raw: []byte{0x30, 0x01}}, nil
}

func testPollerConfig(retries int) config.CAConfig {
	return config.CAConfig{PickupRetries: retries, PickupDelay: time.Millisecond}
}

func TestPoller_SucceedsOnLastAttempt(t *testing.T) {
	collector := &scriptedCollector{failures: 4, failWith: &sectigo.APIError{StatusCode: 400, Code: -1400, Description: "not issued"}}
	poller := NewPoller(collector, slog.New(testutil.NewTestLogHandler()), testPollerConfig(5))

	result, err := poller.Poll(context.Background(), 12, "a.com")
	require.NoError(t, err)

	assert.True(t, result.Complete())
	assert.Equal(t, models.StatusIssued, result.Status)
	assert.Equal(t, "12", result.RequestID)
	assert.Equal(t, "MAE=", result.Certificate)
	assert.Equal(t, 5, collector.calls)
}

func TestPoller_ExhaustedIsPendingApproval(t *testing.T) {
	collector := &scriptedCollector{failures: 5, failWith: sectigo.ErrCertificateNotReady}
	poller := NewPoller(collector, slog.New(testutil.NewTestLogHandler()), testPollerConfig(5))

	result, err := poller.Poll(context.Background(), 12, "a.com")
	require.NoError(t, err)

	assert.False(t, result.Complete())
	assert.Equal(t, models.OutcomePendingApproval, result.Outcome)
	assert.Equal(t, models.StatusPendingApproval, result.Status)
	assert.Equal(t, 5, collector.calls)
}

func TestPoller_TransportFailureIsFatal(t *testing.T) {
	collector := &scriptedCollector{failures: 5, failWith: &sectigo.TransportError{Op: "GET collect", Err: errors.New("connection refused")}}
	poller := NewPoller(collector, slog.New(testutil.NewTestLogHandler()), testPollerConfig(5))

	_, err := poller.Poll(context.Background(), 12, "a.com")
	require.Error(t, err)
	assert.True(t, sectigo.IsTransportError(err))
	assert.Equal(t, 1, collector.calls)
	assert.Equal(t, "connection refused", InnermostMessage(err))
}

func TestPoller_SettleObservesCancellation(t *testing.T) {
	collector := &scriptedCollector{}
	cfg := testPollerConfig(5)
	cfg.PickupSettle = time.Hour
	poller := NewPoller(collector, slog.New(testutil.NewTestLogHandler()), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := poller.Poll(ctx, 12, "a.com")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, collector.calls)
}

func TestPoller_DefaultsRetries(t *testing.T) {
	collector := &scriptedCollector{failures: 100, failWith: sectigo.ErrCertificateNotReady}
	poller := NewPoller(collector, slog.New(testutil.NewTestLogHandler()), config.CAConfig{})

	details, err := poller.Pickup(context.Background(), 1, "a.com")
	require.NoError(t, err)
	assert.Nil(t, details)
	assert.Equal(t, config.DefaultCAConfig.PickupRetries, collector.calls)
}
