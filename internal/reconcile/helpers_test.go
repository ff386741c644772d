package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"scm-gateway/internal/config"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(testutil.NewTestLogHandler())
}

func newFakeClient(t *testing.T, fake *testutil.FakeSCM) *sectigo.Client {
	t.Helper()
	client, err := sectigo.NewClient(config.CAConfig{
		APIEndpoint: fake.URL(),
		AuthType:    config.AuthTypePassword,
		CustomerURI: fake.CustomerURI,
		Username:    fake.Login,
		Password:    fake.Password,
	}, testLogger())
	require.NoError(t, err)
	return client
}

// memorySource serves an inventory without HTTP.
type memorySource struct {
	mu        sync.Mutex
	certs     []models.RemoteCertificate
	positions []int
	onPage    func(position int)
}

func (m *memorySource) PageCertificates(ctx context.Context, position, size int, filter sectigo.Filter) ([]models.RemoteCertificate, error) {
	m.mu.Lock()
	m.positions = append(m.positions, position)
	hook := m.onPage
	m.mu.Unlock()

	if hook != nil {
		hook(position)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var page []models.RemoteCertificate
	for i := position; i < len(m.certs) && i < position+size; i++ {
		page = append(page, m.certs[i])
	}
	return page, nil
}

func (m *memorySource) GetCertificate(ctx context.Context, sslID int) (*models.RemoteCertificate, error) {
	for _, c := range m.certs {
		if c.SSLID == sslID {
			cert := c
			return &cert, nil
		}
	}
	return nil, fmt.Errorf("certificate %d not found", sslID)
}

// memoryLookup is a serial number keyed local store.
type memoryLookup struct {
	mu      sync.Mutex
	records map[string]models.LocalRecord
	calls   int
	err     error
}

func (m *memoryLookup) LookupBySerial(ctx context.Context, serial string) (*models.LocalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[serial]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// staticMaterial returns fixed DER bytes for every id not listed in missing.
type staticMaterial struct {
	missing map[int]bool
}

func (s *staticMaterial) Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error) {
	if s.missing[sslID] {
		return nil, sectigo.ErrCertificateNotReady
	}
	return &models.IssuedCertificateDetails{Raw: []byte{0x30, byte(sslID)}}, nil
}

func inventory(n int) []models.RemoteCertificate {
	certs := make([]models.RemoteCertificate, 0, n)
	for i := 1; i <= n; i++ {
		certs = append(certs, models.RemoteCertificate{
			SSLID:        i,
			CommonName:   fmt.Sprintf("host%d.example.com", i),
			SerialNumber: fmt.Sprintf("%X", i),
			CertType:     models.Profile{ID: 10},
			Status:       "Issued",
		})
	}
	return certs
}

func drain[T any](ch <-chan T) []T {
	var out []T
	for v := range ch {
		out = append(out, v)
	}
	return out
}

func sslIDs(certs []models.RemoteCertificate) []int {
	ids := make([]int, 0, len(certs))
	for _, c := range certs {
		ids = append(ids, c.SSLID)
	}
	return ids
}
