package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scm-gateway/internal/models"
)

func runReconcile(t *testing.T, r *Reconciler, certs []models.RemoteCertificate, force bool) ([]models.CanonicalCertificate, Stats, error) {
	t.Helper()

	in := make(chan models.RemoteCertificate, len(certs))
	for _, c := range certs {
		in <- c
	}
	close(in)

	out := make(chan models.CanonicalCertificate, len(certs)+1)
	stats, err := r.Reconcile(context.Background(), in, out, force)
	close(out)

	return drain(out), stats, err
}

func TestReconciler_Decisions(t *testing.T) {
	revokedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		remote      models.RemoteCertificate
		local       map[string]models.LocalRecord
		force       bool
		missing     bool
		wantEmitted bool
		wantID      string
		wantStatus  models.CertificateStatus
	}{
		{
			name:        "new certificate is emitted with remote id",
			remote:      models.RemoteCertificate{SSLID: 5, CommonName: "a.com", SerialNumber: "0A", Status: "Issued"},
			wantEmitted: true,
			wantID:      "5",
			wantStatus:  models.StatusIssued,
		},
		{
			name:   "unchanged certificate is skipped",
			remote: models.RemoteCertificate{SSLID: 5, CommonName: "a.com", SerialNumber: "0A", Status: "Issued"},
			local:  map[string]models.LocalRecord{"0A": {RequestID: "5", Status: models.StatusIssued}},
		},
		{
			name:        "unchanged certificate is emitted when forced",
			remote:      models.RemoteCertificate{SSLID: 5, CommonName: "a.com", SerialNumber: "0A", Status: "Issued"},
			local:       map[string]models.LocalRecord{"0A": {RequestID: "5-1", Status: models.StatusIssued}},
			force:       true,
			wantEmitted: true,
			wantID:      "5-1",
			wantStatus:  models.StatusIssued,
		},
		{
			name:        "changed status keeps the local request id",
			remote:      models.RemoteCertificate{SSLID: 5, CommonName: "a.com", SerialNumber: "0A", Status: "Revoked", Revoked: &revokedAt},
			local:       map[string]models.LocalRecord{"0A": {RequestID: "5-2", Status: models.StatusIssued}},
			wantEmitted: true,
			wantID:      "5-2",
			wantStatus:  models.StatusRevoked,
		},
		{
			name:   "unissued certificate is skipped",
			remote: models.RemoteCertificate{SSLID: 6, CommonName: "b.com", Status: "Awaiting Approval"},
		},
		{
			name:   "missing common name is skipped",
			remote: models.RemoteCertificate{SSLID: 7, SerialNumber: "0C", Status: "Issued"},
		},
		{
			name:    "missing material is skipped",
			remote:  models.RemoteCertificate{SSLID: 8, CommonName: "c.com", SerialNumber: "0D", Status: "Issued"},
			missing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &memoryLookup{records: tt.local}
			material := &staticMaterial{missing: map[int]bool{tt.remote.SSLID: tt.missing}}
			r := NewReconciler(lookup, material, testLogger(), time.Millisecond)

			got, stats, err := runReconcile(t, r, []models.RemoteCertificate{tt.remote}, tt.force)
			require.NoError(t, err)
			assert.Equal(t, 1, stats.Received)

			if !tt.wantEmitted {
				assert.Empty(t, got)
				assert.Equal(t, 0, stats.Emitted)
				return
			}

			require.Len(t, got, 1)
			assert.Equal(t, tt.wantID, got[0].RequestID)
			assert.Equal(t, tt.wantStatus, got[0].Status)
			assert.NotEmpty(t, got[0].Certificate)
			assert.Equal(t, 1, stats.Emitted)
		})
	}
}

func TestReconciler_RevocationFields(t *testing.T) {
	revokedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewReconciler(&memoryLookup{}, &staticMaterial{}, testLogger(), time.Millisecond)

	got, _, err := runReconcile(t, r, []models.RemoteCertificate{
		{SSLID: 1, CommonName: "a.com", SerialNumber: "01", Status: "Revoked", Revoked: &revokedAt, CertType: models.Profile{ID: 44}},
		{SSLID: 2, CommonName: "b.com", SerialNumber: "02", Status: "Enrolled - Pending Download"},
	}, false)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].RevocationReason)
	assert.Equal(t, revokedAt, got[0].RevocationDate)
	assert.Equal(t, "44", got[0].ProductID)

	assert.Equal(t, models.StatusIssued, got[1].Status)
	assert.Equal(t, models.RevocationNotApplicable, got[1].RevocationReason)
}

func TestReconciler_SkipsLookupWithoutSerial(t *testing.T) {
	lookup := &memoryLookup{}
	r := NewReconciler(lookup, &staticMaterial{}, testLogger(), time.Millisecond)

	_, stats, err := runReconcile(t, r, []models.RemoteCertificate{{SSLID: 1, CommonName: "a.com", Status: "Requested"}}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, lookup.calls)
	assert.Equal(t, 1, stats.Skipped)
}

func TestReconciler_UnknownStatusStopsPass(t *testing.T) {
	r := NewReconciler(&memoryLookup{}, &staticMaterial{}, testLogger(), time.Millisecond)

	got, _, err := runReconcile(t, r, []models.RemoteCertificate{
		{SSLID: 1, CommonName: "a.com", SerialNumber: "01", Status: "Issued"},
		{SSLID: 2, CommonName: "b.com", SerialNumber: "02", Status: "Any"},
		{SSLID: 3, CommonName: "c.com", SerialNumber: "03", Status: "Issued"},
	}, false)

	var statusErr *models.UnknownStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 2, statusErr.SSLID)
	assert.Len(t, got, 1)
}

func TestReconciler_LookupFailureStopsPass(t *testing.T) {
	r := NewReconciler(&memoryLookup{err: errors.New("database unavailable")}, &staticMaterial{}, testLogger(), time.Millisecond)

	_, _, err := runReconcile(t, r, []models.RemoteCertificate{{SSLID: 1, CommonName: "a.com", SerialNumber: "01", Status: "Issued"}}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestReconciler_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewReconciler(&memoryLookup{}, &staticMaterial{}, testLogger(), time.Millisecond)

	in := make(chan models.RemoteCertificate)
	out := make(chan models.CanonicalCertificate)

	done := make(chan error, 1)
	go func() {
		_, err := r.Reconcile(ctx, in, out, false)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}
