package sectigo

import (
	"errors"
	"fmt"
)

// ErrCertificateNotReady is returned by Collect while SCM has no material to hand out yet.
var ErrCertificateNotReady = errors.New("certificate material is not available yet")

// APIError is a non-success response from SCM, decoded from its {code, description} body.
type APIError struct {
	StatusCode  int
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("scm api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%d | %s", e.Code, e.Description)
}

// TransportError wraps failures to reach SCM or read its response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err was caused by the network or HTTP layer.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
