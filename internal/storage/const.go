package storage

import (
	"errors"
)

var (
	ErrCertificateNotFound = errors.New("certificate record not found")
)
