package storage

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"scm-gateway/internal/config"
	"scm-gateway/internal/models"
)

// GetConnectionStringFromConfig builds a postgres URL from the storage settings.
func GetConnectionStringFromConfig(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Storage.Host, strconv.Itoa(cfg.Storage.Port)),
		Path:   "/" + cfg.Storage.Database,
	}
	if cfg.Storage.Username != "" {
		u.User = url.UserPassword(cfg.Storage.Username, cfg.Storage.Password)
	}
	return u.String()
}

// decodeStatus reads a stored status. Rows written by older releases hold the
// numeric end-entity code instead of the status name.
func decodeStatus(raw string) (models.CertificateStatus, error) {
	raw = strings.TrimSpace(raw)
	if code, err := strconv.Atoi(raw); err == nil {
		return models.StatusFromLegacyCode(code)
	}

	status := models.CertificateStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown stored status %q", raw)
	}
	return status, nil
}
