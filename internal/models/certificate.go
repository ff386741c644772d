package models

import (
	"fmt"
	"time"
)

// RemoteCertificate is a single entry of the SCM ssl inventory, as returned by the detail endpoint.
type RemoteCertificate struct {
	SSLID                   int        `json:"sslId"`
	CommonName              string     `json:"commonName"`
	SubjectAlternativeNames []string   `json:"subjectAlternativeNames"`
	SerialNumber            string     `json:"serialNumber"`
	CertType                Profile    `json:"certType"`
	Status                  string     `json:"status"`
	Requested               *time.Time `json:"requested,omitempty"`
	Approved                *time.Time `json:"approved,omitempty"`
	Revoked                 *time.Time `json:"revoked,omitempty"`
}

func (c RemoteCertificate) String() string {
	return fmt.Sprintf("sslId:%d | commonName:%s | serialNumber:%s", c.SSLID, c.CommonName, c.SerialNumber)
}

// Profile is an SCM ssl certificate type.
type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Terms []int  `json:"terms,omitempty"`
}

// CanonicalCertificate is a reconciled record handed to the local certificate store.
type CanonicalCertificate struct {
	RequestID        string            `json:"request_id"`
	ProductID        string            `json:"product_id"`
	Certificate      string            `json:"certificate,omitempty"` // base64 DER
	Status           CertificateStatus `json:"status"`
	RevocationReason int               `json:"revocation_reason"`
	RevocationDate   time.Time         `json:"revocation_date"`
	SerialNumber     string            `json:"serial_number,omitempty"`
	CommonName       string            `json:"common_name,omitempty"`
}

// NewCanonicalCertificate builds a canonical record, deriving the revocation fields from status.
func NewCanonicalCertificate(requestID string, remote RemoteCertificate, status CertificateStatus, certificate string) CanonicalCertificate {
	revokedAt := time.Now().UTC()
	if remote.Revoked != nil {
		revokedAt = *remote.Revoked
	}

	return CanonicalCertificate{
		RequestID:        requestID,
		ProductID:        fmt.Sprintf("%d", remote.CertType.ID),
		Certificate:      certificate,
		Status:           status,
		RevocationReason: RevocationReasonFor(status),
		RevocationDate:   revokedAt,
		SerialNumber:     remote.SerialNumber,
		CommonName:       remote.CommonName,
	}
}

// LocalRecord is what the local store already knows about a certificate.
type LocalRecord struct {
	RequestID string
	Status    CertificateStatus
}

// IssuedCertificateDetails contains the details parsed from downloaded certificate material
type IssuedCertificateDetails struct {
	SerialNumber string
	Subject      string
	Issuer       string
	NotBefore    time.Time
	NotAfter     time.Time
	DNSNames     []string
	CommonName   string
	Raw          []byte
}
