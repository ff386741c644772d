package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		label    string
		expected CertificateStatus
	}{
		{"Issued", StatusIssued},
		{"Enrolled - Pending Download", StatusIssued},
		{"Enrolled-Pending-Download", StatusIssued},
		{"Approved", StatusIssued},
		{"Applied", StatusIssued},
		{"Downloaded", StatusIssued},
		{"Expired", StatusIssued},
		{"Requested", StatusPendingApproval},
		{"Awaiting Approval", StatusPendingApproval},
		{"Awaiting-Approval", StatusPendingApproval},
		{"Not Enrolled", StatusPendingApproval},
		{"Init", StatusPendingApproval},
		{"Revoked", StatusRevoked},
		{"Invalid", StatusFailed},
		{"Declined", StatusFailed},
		{"Rejected", StatusFailed},
		{"iSSUED", StatusIssued},
		{"  revoked ", StatusRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			status, err := ClassifyStatus(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestClassifyStatus_Unknown(t *testing.T) {
	for _, label := range []string{"Any", "ANY", "", "Suspended", "Issued!"} {
		t.Run(label, func(t *testing.T) {
			status, err := ClassifyStatusForID(42, label)
			require.Error(t, err)
			assert.Empty(t, status)

			var unknown *UnknownStatusError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, 42, unknown.SSLID)
			assert.Equal(t, label, unknown.Label)
		})
	}
}

func TestRevocationReasonFor(t *testing.T) {
	assert.Equal(t, 0, RevocationReasonFor(StatusRevoked))
	assert.Equal(t, RevocationNotApplicable, RevocationReasonFor(StatusIssued))
	assert.Equal(t, RevocationNotApplicable, RevocationReasonFor(StatusPendingApproval))
	assert.Equal(t, RevocationNotApplicable, RevocationReasonFor(StatusFailed))
}

func TestStatusFromLegacyCode(t *testing.T) {
	tests := []struct {
		code     int
		expected CertificateStatus
		wantErr  bool
	}{
		{LegacyCodeGenerated, StatusIssued, false},
		{LegacyCodeExternalValidation, StatusPendingApproval, false},
		{LegacyCodeRevoked, StatusRevoked, false},
		{LegacyCodeFailed, StatusFailed, false},
		{0, "", true},
	}

	for _, tt := range tests {
		status, err := StatusFromLegacyCode(tt.code)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.expected, status)
	}
}

func TestParseRequestID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "plain", input: "1234", expected: 1234},
		{name: "suffixed", input: "1234-2", expected: 1234},
		{name: "whitespace", input: " 77 ", expected: 77},
		{name: "empty", input: "", wantErr: true},
		{name: "not numeric", input: "abc-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseRequestID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequestID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestRevokeReasonText(t *testing.T) {
	assert.Equal(t, "Compromised Key", RevokeReasonText(1))
	assert.Equal(t, "Superseded", RevokeReasonText(4))
	assert.Equal(t, "Certificate Hold", RevokeReasonText(6))
	assert.Equal(t, "Unspecified", RevokeReasonText(0))
	assert.Equal(t, "Unspecified", RevokeReasonText(99))
}

func TestFindOrganization(t *testing.T) {
	orgs := []Organization{
		{ID: 1, Name: "Acme Corp", Departments: []Department{{ID: 10, Name: "Web Ops"}}},
		{ID: 2, Name: "Globex"},
	}

	org, ok := FindOrganization(orgs, "acme corp")
	require.True(t, ok)
	assert.Equal(t, 1, org.ID)

	dep, ok := org.FindDepartment("WEB OPS")
	require.True(t, ok)
	assert.Equal(t, 10, dep.ID)

	_, ok = org.FindDepartment("Finance")
	assert.False(t, ok)

	_, ok = FindOrganization(orgs, "Initech")
	assert.False(t, ok)
}

func TestParseEnrollmentType(t *testing.T) {
	typ, err := ParseEnrollmentType("Renew")
	require.NoError(t, err)
	assert.Equal(t, EnrollmentRenew, typ)

	typ, err = ParseEnrollmentType("")
	require.NoError(t, err)
	assert.Equal(t, EnrollmentNew, typ)

	_, err = ParseEnrollmentType("transfer")
	assert.Error(t, err)
}
