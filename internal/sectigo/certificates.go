package sectigo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"scm-gateway/internal/models"
	"scm-gateway/internal/utils"
)

func (c *Client) GetCertificate(ctx context.Context, sslID int) (*models.RemoteCertificate, error) {
	var cert models.RemoteCertificate
	if err := c.doJSON(ctx, http.MethodGet, "ssl/v1/{id}", fmt.Sprintf("ssl/v1/%d", sslID), nil, &cert); err != nil {
		return nil, fmt.Errorf("failed to get certificate %d: %w", sslID, err)
	}
	return &cert, nil
}

// PageCertificates returns up to size inventory entries starting at position.
// Entries carry only summary fields; use GetCertificate for the full record.
func (c *Client) PageCertificates(ctx context.Context, position, size int, filter Filter) ([]models.RemoteCertificate, error) {
	q := url.Values{}
	q.Set("position", strconv.Itoa(position))
	q.Set("size", strconv.Itoa(size))
	if filter.Key != "" {
		q.Set(filter.Key, filter.Value)
	}

	var page []models.RemoteCertificate
	if err := c.doJSON(ctx, http.MethodGet, "ssl/v1", "ssl/v1?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) Enroll(ctx context.Context, req models.EnrollmentRequest) (*models.EnrollResponse, error) {
	var resp models.EnrollResponse
	if err := c.doJSON(ctx, http.MethodPost, "ssl/v1/enroll", "ssl/v1/enroll", req, &resp); err != nil {
		return nil, fmt.Errorf("enroll request failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) Renew(ctx context.Context, sslID int) (*models.EnrollResponse, error) {
	var resp models.EnrollResponse
	path := fmt.Sprintf("ssl/v1/renewById/%d", sslID)
	if err := c.doJSON(ctx, http.MethodPost, "ssl/v1/renewById/{id}", path, struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("renew request for %d failed: %w", sslID, err)
	}
	return &resp, nil
}

// Reissue replaces the certificate in place; the ssl id does not change.
func (c *Client) Reissue(ctx context.Context, sslID int, req models.ReissueRequest) error {
	path := fmt.Sprintf("ssl/v1/replace/%d", sslID)
	if err := c.doJSON(ctx, http.MethodPost, "ssl/v1/replace/{id}", path, req, nil); err != nil {
		return fmt.Errorf("reissue request for %d failed: %w", sslID, err)
	}
	return nil
}

func (c *Client) Revoke(ctx context.Context, sslID int, req models.RevokeRequest) error {
	path := fmt.Sprintf("ssl/v1/revoke/%d", sslID)
	if err := c.doJSON(ctx, http.MethodPost, "ssl/v1/revoke/{id}", path, req, nil); err != nil {
		return fmt.Errorf("revoke request for %d failed: %w", sslID, err)
	}
	return nil
}

// Collect downloads the issued chain and parses the leaf, which SCM returns first.
func (c *Client) Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error) {
	path := fmt.Sprintf("ssl/v1/collect/%d/x509CO", sslID)
	body, err := c.do(ctx, http.MethodGet, "ssl/v1/collect/{id}/x509CO", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to collect certificate %d: %w", sslID, err)
	}

	if len(body) == 0 {
		return nil, ErrCertificateNotReady
	}

	details, err := utils.ParseLeafCertificate(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collected certificate %d: %w", sslID, err)
	}
	return details, nil
}

// IsNotReady reports whether a Collect failure means the certificate may still become available.
// SCM answers a collect for an unfinished certificate with an error response, so every API error counts.
func IsNotReady(err error) bool {
	if errors.Is(err, ErrCertificateNotReady) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
