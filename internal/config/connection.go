package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Connection data keys used by gateway hosts that hand over untyped settings.
const (
	KeyAPIEndpoint                = "ApiEndpoint"
	KeyAuthType                   = "AuthType"
	KeyCustomerURI                = "CustomerUri"
	KeyUsername                   = "Username"
	KeyPassword                   = "Password"
	KeyClientCertificate          = "ClientCertificate"
	KeyPickupRetries              = "PickupRetries"
	KeyPickupDelay                = "PickupDelay"
	KeyPageSize                   = "PageSize"
	KeyExternalRequestorFieldName = "ExternalRequestorFieldName"
	KeySyncFilterProfileID        = "SyncFilterProfileId"
	KeyForceCompleteSync          = "ForceCompleteSync"
	KeyEnabled                    = "Enabled"

	KeyMultiDomain  = "MultiDomain"
	KeyOrganization = "Organization"
	KeyDepartment   = "Department"
)

// ErrInvalidParameter is returned when a product or connection parameter has the wrong type.
var ErrInvalidParameter = errors.New("invalid parameter")

var requiredConnectionKeys = []string{KeyAPIEndpoint, KeyAuthType}

// ValidateConnectionData reports every required key that is missing or empty.
func ValidateConnectionData(data map[string]any) error {
	var result *multierror.Error
	for _, key := range requiredConnectionKeys {
		v, ok := data[key]
		if !ok || v == nil || fmt.Sprint(v) == "" {
			result = multierror.Append(result, fmt.Errorf("%s is a required configuration value", key))
		}
	}
	return result.ErrorOrNil()
}

// ParseConnectionData converts untyped host connection data into a validated CAConfig.
// Unknown keys are ignored; PickupDelay is given in seconds.
func ParseConnectionData(data map[string]any) (*CAConfig, error) {
	if err := ValidateConnectionData(data); err != nil {
		return nil, err
	}

	var (
		cfg    CAConfig
		result *multierror.Error
	)

	cfg.APIEndpoint = stringValue(data[KeyAPIEndpoint])
	cfg.AuthType = stringValue(data[KeyAuthType])
	cfg.CustomerURI = stringValue(data[KeyCustomerURI])
	cfg.Username = stringValue(data[KeyUsername])
	cfg.Password = stringValue(data[KeyPassword])
	cfg.ExternalRequestorFieldName = stringValue(data[KeyExternalRequestorFieldName])

	if path := stringValue(data[KeyClientCertificate]); path != "" {
		cfg.ClientCertificate = &ClientCertificateConfig{Path: path}
	}

	if v, ok := data[KeyPickupRetries]; ok {
		n, err := intValue(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", KeyPickupRetries, err))
		}
		cfg.PickupRetries = n
	}

	if v, ok := data[KeyPickupDelay]; ok {
		n, err := intValue(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", KeyPickupDelay, err))
		}
		cfg.PickupDelay = time.Duration(n) * time.Second
	}

	if v, ok := data[KeyPageSize]; ok {
		n, err := intValue(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", KeyPageSize, err))
		}
		cfg.PageSize = n
	}

	if v := stringValue(data[KeySyncFilterProfileID]); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.SyncFilterProfileIDs = append(cfg.SyncFilterProfileIDs, id)
			}
		}
	}

	if v, ok := data[KeyForceCompleteSync]; ok {
		b, err := boolValue(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", KeyForceCompleteSync, err))
		}
		cfg.ForceCompleteSync = b
	}

	if v, ok := data[KeyEnabled]; ok {
		b, err := boolValue(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", KeyEnabled, err))
		}
		cfg.Enabled = &b
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseProductParameters converts enrollment template parameters into a ProductConfig.
func ParseProductParameters(params map[string]string) (ProductConfig, error) {
	var p ProductConfig

	if v, ok := params[KeyMultiDomain]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: %s could not be parsed: %v", ErrInvalidParameter, KeyMultiDomain, err)
		}
		p.MultiDomain = &b
	}

	p.Organization = strings.TrimSpace(params[KeyOrganization])
	p.Department = strings.TrimSpace(params[KeyDepartment])

	return p, nil
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, nil
		}
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func boolValue(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if strings.TrimSpace(b) == "" {
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(b))
	default:
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
}
