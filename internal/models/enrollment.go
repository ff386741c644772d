package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type EnrollmentType string

const (
	EnrollmentNew            EnrollmentType = "new"
	EnrollmentRenew          EnrollmentType = "renew"
	EnrollmentReissue        EnrollmentType = "reissue"
	EnrollmentRenewOrReissue EnrollmentType = "renew_or_reissue"
)

func ParseEnrollmentType(s string) (EnrollmentType, error) {
	switch t := EnrollmentType(strings.ToLower(strings.TrimSpace(s))); t {
	case EnrollmentNew, EnrollmentRenew, EnrollmentReissue, EnrollmentRenewOrReissue:
		return t, nil
	case "":
		return EnrollmentNew, nil
	default:
		return "", fmt.Errorf("unsupported enrollment type %q", s)
	}
}

// EnrollmentRequest is the body of POST /ssl/v1/enroll.
type EnrollmentRequest struct {
	OrgID             int           `json:"orgId"`
	CSR               string        `json:"csr"`
	SubjAltNames      string        `json:"subjAltNames,omitempty"`
	CertType          int           `json:"certType"`
	NumberServers     int           `json:"numberServers"`
	ServerType        int           `json:"serverType"`
	Term              int           `json:"term"`
	Comments          string        `json:"comments,omitempty"`
	CustomFields      []CustomField `json:"customFields,omitempty"`
	ExternalRequester string        `json:"externalRequester,omitempty"`
}

type EnrollResponse struct {
	SSLID   int    `json:"sslId"`
	RenewID string `json:"renewId,omitempty"`
}

// ReissueRequest is the body of POST /ssl/v1/replace/{id}.
type ReissueRequest struct {
	CSR                     string   `json:"csr"`
	Reason                  string   `json:"reason"`
	CommonName              string   `json:"commonName"`
	SubjectAlternativeNames []string `json:"subjectAlternativeNames,omitempty"`
}

type RevokeRequest struct {
	ReasonCode int    `json:"reasonCode"`
	Reason     string `json:"reason"`
}

type EnrollmentOutcome string

const (
	OutcomeComplete        EnrollmentOutcome = "complete"
	OutcomePendingApproval EnrollmentOutcome = "pending_approval"
)

// EnrollmentResult is the non-fatal outcome of an enrollment or pickup.
// Fatal conditions are returned as errors and never encoded here.
type EnrollmentResult struct {
	RequestID   string            `json:"request_id"`
	Certificate string            `json:"certificate,omitempty"`
	Status      CertificateStatus `json:"status"`
	Outcome     EnrollmentOutcome `json:"outcome"`
	Message     string            `json:"message"`
}

func (r EnrollmentResult) Complete() bool {
	return r.Outcome == OutcomeComplete
}

func PendingApprovalResult(sslID int, message string) *EnrollmentResult {
	return &EnrollmentResult{
		RequestID: strconv.Itoa(sslID),
		Status:    StatusPendingApproval,
		Outcome:   OutcomePendingApproval,
		Message:   message,
	}
}

// ParseRequestID extracts the SCM ssl id from a request id. Request ids of
// reissued certificates may carry a "-n" suffix that is not part of the ssl id.
// ErrInvalidRequestID is returned for request ids without a numeric ssl id prefix.
var ErrInvalidRequestID = errors.New("invalid request id")

func ParseRequestID(requestID string) (int, error) {
	idPart, _, _ := strings.Cut(strings.TrimSpace(requestID), "-")
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidRequestID, requestID, err)
	}
	return id, nil
}

// RevokeReasonText converts an RFC 5280 reason code to the text SCM expects.
func RevokeReasonText(code int) string {
	switch code {
	case 1:
		return "Compromised Key"
	case 2:
		return "CA Compromised"
	case 3:
		return "Affiliation Changed"
	case 4:
		return "Superseded"
	case 5:
		return "Cessation of Operation"
	case 6:
		return "Certificate Hold"
	default:
		return "Unspecified"
	}
}
