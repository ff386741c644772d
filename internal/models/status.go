package models

import (
	"fmt"
	"strings"
	"unicode"
)

type CertificateStatus string

const (
	StatusIssued          CertificateStatus = "issued"
	StatusPendingApproval CertificateStatus = "pending_approval"
	StatusRevoked         CertificateStatus = "revoked"
	StatusFailed          CertificateStatus = "failed"
)

// RevocationNotApplicable is the revocation reason carried by every non-revoked record.
const RevocationNotApplicable = 0xffffff

func (s CertificateStatus) Valid() bool {
	switch s {
	case StatusIssued, StatusPendingApproval, StatusRevoked, StatusFailed:
		return true
	}
	return false
}

func (s CertificateStatus) IsTerminal() bool {
	return s == StatusRevoked || s == StatusFailed
}

// RevocationReasonFor returns 0 for revoked certificates and RevocationNotApplicable otherwise.
func RevocationReasonFor(s CertificateStatus) int {
	if s == StatusRevoked {
		return 0
	}
	return RevocationNotApplicable
}

// UnknownStatusError is returned when SCM reports a status label that has no canonical mapping.
type UnknownStatusError struct {
	SSLID int
	Label string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("request id %d has unknown status %q", e.SSLID, e.Label)
}

// remote labels are keyed by their normalized form, see normalizeStatusLabel.
// "ANY" is deliberately absent: it is a query wildcard, not a lifecycle state.
var remoteStatuses = map[string]CertificateStatus{
	"ISSUED":                  StatusIssued,
	"ENROLLEDPENDINGDOWNLOAD": StatusIssued,
	"APPROVED":                StatusIssued,
	"APPLIED":                 StatusIssued,
	"DOWNLOADED":              StatusIssued,
	"EXPIRED":                 StatusIssued,

	"REQUESTED":        StatusPendingApproval,
	"AWAITINGAPPROVAL": StatusPendingApproval,
	"NOTENROLLED":      StatusPendingApproval,
	"INIT":             StatusPendingApproval,

	"REVOKED": StatusRevoked,

	"INVALID":  StatusFailed,
	"DECLINED": StatusFailed,
	"REJECTED": StatusFailed,
}

// ClassifyStatus maps an SCM status label to its canonical lifecycle state.
// Matching ignores case, whitespace and hyphens, so "Enrolled - Pending Download"
// and "enrolled-pending-download" are the same label.
func ClassifyStatus(label string) (CertificateStatus, error) {
	return ClassifyStatusForID(0, label)
}

// ClassifyStatusForID is ClassifyStatus with the ssl id recorded on failure.
func ClassifyStatusForID(sslID int, label string) (CertificateStatus, error) {
	status, ok := remoteStatuses[normalizeStatusLabel(label)]
	if !ok {
		return "", &UnknownStatusError{SSLID: sslID, Label: label}
	}
	return status, nil
}

func normalizeStatusLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, label)
}

// Numeric end-entity codes written by older gateway releases.
const (
	LegacyCodeExternalValidation = 9
	LegacyCodeFailed             = 11
	LegacyCodeGenerated          = 20
	LegacyCodeRevoked            = 21
)

// StatusFromLegacyCode converts a stored legacy numeric status to the canonical state.
func StatusFromLegacyCode(code int) (CertificateStatus, error) {
	switch code {
	case LegacyCodeGenerated:
		return StatusIssued, nil
	case LegacyCodeExternalValidation:
		return StatusPendingApproval, nil
	case LegacyCodeRevoked:
		return StatusRevoked, nil
	case LegacyCodeFailed:
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("unknown legacy status code %d", code)
	}
}
