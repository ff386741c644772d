package sectigo

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"scm-gateway/internal/config"
	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
)

//go:generate mockgen -source=client.go -destination=../mocks/sectigo.go -package=mocks

// API is the subset of the SCM REST surface the gateway consumes.
type API interface {
	GetCertificate(ctx context.Context, sslID int) (*models.RemoteCertificate, error)
	PageCertificates(ctx context.Context, position, size int, filter Filter) ([]models.RemoteCertificate, error)
	Enroll(ctx context.Context, req models.EnrollmentRequest) (*models.EnrollResponse, error)
	Renew(ctx context.Context, sslID int) (*models.EnrollResponse, error)
	Reissue(ctx context.Context, sslID int, req models.ReissueRequest) error
	Revoke(ctx context.Context, sslID int, req models.RevokeRequest) error
	Collect(ctx context.Context, sslID int) (*models.IssuedCertificateDetails, error)
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	GetOrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error)
	ListPersons(ctx context.Context, orgID int) ([]models.Person, error)
	ListCustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error)
	ListSSLProfiles(ctx context.Context, orgID int) ([]models.Profile, error)
}

// Filter narrows a certificate listing to entries where Key equals Value.
type Filter struct {
	Key   string
	Value string
}

// FilterSSLTypeID filters listings by ssl profile id.
const FilterSSLTypeID = "sslTypeId"

// Client talks to the SCM REST API with the account credentials attached to every request.
type Client struct {
	baseURL    string
	authType   string
	customer   string
	login      string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// NewClient builds a client from validated CA settings.
func NewClient(cfg config.CAConfig, logger *slog.Logger) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.APIEndpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("scm api endpoint is required")
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultCAConfig.Timeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	authType := strings.ToLower(cfg.AuthType)
	if authType == config.AuthTypeCertificate {
		if cfg.ClientCertificate == nil || cfg.ClientCertificate.Path == "" {
			return nil, fmt.Errorf("auth type is certificate but no client certificate is configured")
		}
		cert, err := loadClientCertificate(cfg.ClientCertificate.Path, cfg.ClientCertificate.Password)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	return &Client{
		baseURL:  endpoint,
		authType: authType,
		customer: cfg.CustomerURI,
		login:    cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}, nil
}

// do sends one request and returns the body of a successful response.
// route is the path template used as the metrics label.
func (c *Client) do(ctx context.Context, method, route, path string, body any) ([]byte, error) {
	op := method + " " + route

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"api/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(HeaderCustomerURI, c.customer)
	req.Header.Set(HeaderLogin, c.login)
	if c.authType != config.AuthTypeCertificate {
		req.Header.Set(HeaderPassword, c.password)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("scm api request", "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.SCMRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SCMRequestsTotal.WithLabelValues(method, route, "error").Inc()
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	metrics.SCMRequestsTotal.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if len(respBody) > 0 {
			if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil {
				apiErr.Description = strings.TrimSpace(string(respBody))
			}
		}
		return nil, apiErr
	}

	return respBody, nil
}

func (c *Client) doJSON(ctx context.Context, method, route, path string, body, out any) error {
	respBody, err := c.do(ctx, method, route, path, body)
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", route, err)
	}
	return nil
}
