package sectigo

import (
	"crypto/tls"
	"fmt"
	"os"

	"software.sslmate.com/src/go-pkcs12"
)

// Header names SCM reads the account credentials from.
const (
	HeaderCustomerURI = "customerUri"
	HeaderLogin       = "login"
	HeaderPassword    = "password"
)

func loadClientCertificate(path, password string) (tls.Certificate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read client certificate: %w", err)
	}

	key, leaf, chain, err := pkcs12.DecodeChain(raw, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to decode client certificate: %w", err)
	}

	if key == nil {
		return tls.Certificate{}, fmt.Errorf("client certificate %s has no private key", path)
	}

	cert := tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  key,
		Leaf:        leaf,
	}
	for _, c := range chain {
		cert.Certificate = append(cert.Certificate, c.Raw)
	}

	return cert, nil
}
