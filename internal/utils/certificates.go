package utils

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"scm-gateway/internal/models"
)

// ParseLeafCertificate extracts details from the first CERTIFICATE block of a PEM chain.
func ParseLeafCertificate(pemChain []byte) (*models.IssuedCertificateDetails, error) {
	rest := pemChain
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("failed to decode PEM block")
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %w", err)
		}

		return &models.IssuedCertificateDetails{
			SerialNumber: fmt.Sprintf("%X", cert.SerialNumber),
			Subject:      cert.Subject.String(),
			Issuer:       cert.Issuer.String(),
			NotBefore:    cert.NotBefore,
			NotAfter:     cert.NotAfter,
			DNSNames:     cert.DNSNames,
			CommonName:   cert.Subject.CommonName,
			Raw:          cert.Raw,
		}, nil
	}
}

// EncodeDER returns the base64 form the local store keeps certificate material in.
func EncodeDER(der []byte) string {
	return base64.StdEncoding.EncodeToString(der)
}
