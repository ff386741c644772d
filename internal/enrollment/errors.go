package enrollment

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration and lookup failures. None of these are retried.
var (
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrNoCertificateTypes    = errors.New("no valid certificate type configured")
	ErrMissingCustomField    = errors.New("missing mandatory custom field")
	ErrProfileNotFound       = errors.New("ssl profile not found")
	ErrUnsupportedEnrollment = errors.New("unsupported enrollment type")
	ErrPriorRequestRequired  = errors.New("prior request id is required")
	ErrMissingOrganization   = errors.New("request is missing an organization")
	ErrDisabled              = errors.New("gateway is disabled")
)

// ConfigurationError carries a descriptive message for one of the sentinel kinds above.
// errors.Is matches the kind.
type ConfigurationError struct {
	Kind    error
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == e.Kind
}

func configError(kind error, format string, args ...any) error {
	return &ConfigurationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is a non-retryable configuration or lookup failure.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// InnermostMessage returns the message of the deepest error in err's chain,
// which is the most specific description of what went wrong.
func InnermostMessage(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return strings.TrimSpace(err.Error())
}
