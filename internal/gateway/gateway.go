package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"scm-gateway/internal/config"
	"scm-gateway/internal/enrollment"
	"scm-gateway/internal/models"
	"scm-gateway/internal/reconcile"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/utils"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrNotDownloaded  = errors.New("certificate could not be downloaded")
)

// EnrollRequest is an enrollment as received from a caller. Parameters carry
// both the product template values and the custom field values.
type EnrollRequest struct {
	CSR            string                `json:"csr"`
	Subject        string                `json:"subject"`
	SANs           []string              `json:"sans"`
	ProductID      string                `json:"product_id"`
	Parameters     map[string]string     `json:"parameters"`
	Type           models.EnrollmentType `json:"type"`
	PriorRequestID string                `json:"prior_request_id,omitempty"`
}

// Gateway is the set of CA operations exposed to the local certificate store.
type Gateway struct {
	api          sectigo.API
	directory    enrollment.Directory
	poller       *enrollment.Poller
	orchestrator *enrollment.Orchestrator
	synchronizer *reconcile.Synchronizer
	logger       *slog.Logger
	cfg          *config.Config
}

// New wires the gateway operations. A nil directory resolves metadata from api on every call.
func New(api sectigo.API, directory enrollment.Directory, lookup reconcile.RecordLookup, logger *slog.Logger, cfg *config.Config) *Gateway {
	if directory == nil {
		directory = apiDirectory{api: api}
	}

	poller := enrollment.NewPoller(api, logger, cfg.CA)
	lister := reconcile.NewLister(api, logger, cfg.Sync.OfferTimeout)
	reconciler := reconcile.NewReconciler(lookup, api, logger, cfg.Sync.OfferTimeout)

	return &Gateway{
		api:          api,
		directory:    directory,
		poller:       poller,
		orchestrator: enrollment.NewOrchestrator(directory, api, poller, logger, cfg.CA),
		synchronizer: reconcile.NewSynchronizer(lister, reconciler, logger, cfg.Sync.QueueCapacity),
		logger:       logger,
		cfg:          cfg,
	}
}

func (g *Gateway) Config() *config.Config {
	return g.cfg
}

// Ping checks the credentials by listing organizations. It does nothing when the CA is disabled.
func (g *Gateway) Ping(ctx context.Context) error {
	if !g.cfg.CA.IsEnabled() {
		g.logger.Warn("the CA is currently in the disabled state, skipping connectivity test")
		return nil
	}

	g.logger.Debug("attempting to ping the SCM api")
	if _, err := g.api.ListOrganizations(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	g.logger.Debug("ping successful")
	return nil
}

// Enroll merges the configured product parameters with the request parameters and enrolls.
func (g *Gateway) Enroll(ctx context.Context, req EnrollRequest) (*models.EnrollmentResult, error) {
	product, err := g.productConfig(req.ProductID, req.Parameters)
	if err != nil {
		return nil, err
	}

	return g.orchestrator.Enroll(ctx, enrollment.Input{
		CSR:            req.CSR,
		Subject:        req.Subject,
		SANs:           req.SANs,
		ProductID:      req.ProductID,
		Product:        product,
		Parameters:     req.Parameters,
		Type:           req.Type,
		PriorRequestID: req.PriorRequestID,
	})
}

// Revoke revokes the certificate behind requestID with an RFC 5280 reason code.
func (g *Gateway) Revoke(ctx context.Context, requestID string, reasonCode int) (models.CertificateStatus, error) {
	if !g.cfg.CA.IsEnabled() {
		return "", enrollment.ErrDisabled
	}

	sslID, err := models.ParseRequestID(requestID)
	if err != nil {
		return "", err
	}

	reason := models.RevokeReasonText(reasonCode)
	g.logger.Info("revoking certificate", "ssl_id", sslID, "request_id", requestID, "reason", reason)

	if err := g.api.Revoke(ctx, sslID, models.RevokeRequest{ReasonCode: reasonCode, Reason: reason}); err != nil {
		return "", err
	}
	return models.StatusRevoked, nil
}

// GetSingleRecord returns the current state of one certificate. Pending, failed
// and revoked certificates are returned without material.
func (g *Gateway) GetSingleRecord(ctx context.Context, requestID string) (*models.CanonicalCertificate, error) {
	sslID, err := models.ParseRequestID(requestID)
	if err != nil {
		return nil, err
	}

	detail, err := g.api.GetCertificate(ctx, sslID)
	if err != nil {
		return nil, err
	}

	status, err := models.ClassifyStatusForID(sslID, detail.Status)
	if err != nil {
		return nil, err
	}

	if status != models.StatusIssued {
		record := models.NewCanonicalCertificate(requestID, *detail, status, "")
		return &record, nil
	}

	material, err := g.poller.Download(ctx, sslID, detail.CommonName)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: request id %s", ErrNotDownloaded, requestID)
	}

	record := models.NewCanonicalCertificate(requestID, *detail, status, utils.EncodeDER(material.Raw))
	return &record, nil
}

// ProductIDs lists the ssl profile ids available to the account.
func (g *Gateway) ProductIDs(ctx context.Context) ([]string, error) {
	profiles, err := g.directory.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ssl profiles: %w", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, strconv.Itoa(p.ID))
	}
	return ids, nil
}

// ValidateProduct checks that productID is a known ssl profile and that its parameters parse.
func (g *Gateway) ValidateProduct(ctx context.Context, productID string, params map[string]string) error {
	ids, err := g.ProductIDs(ctx)
	if err != nil {
		return err
	}

	productID = strings.TrimSpace(productID)
	if !slices.Contains(ids, productID) {
		return fmt.Errorf("%w: product id %q is not an available ssl profile", ErrUnknownProduct, productID)
	}

	_, err = config.ParseProductParameters(params)
	return err
}

// Synchronize streams the canonical records the local store needs onto out and closes it.
func (g *Gateway) Synchronize(ctx context.Context, out chan<- models.CanonicalCertificate, fullSync bool) (reconcile.Stats, error) {
	force := fullSync || g.cfg.CA.ForceCompleteSync
	if force && !fullSync {
		g.logger.Info("performing a full synchronization because force_complete_sync is set")
	}

	return g.synchronizer.Synchronize(ctx, out, reconcile.SyncOptions{
		Filter:        reconcile.ProfileFilter(g.cfg.CA.SyncFilterProfileIDs),
		PageSize:      g.cfg.CA.PageSize,
		ForceFullSync: force,
	})
}

// productConfig overlays request parameters on the configured product parameters.
func (g *Gateway) productConfig(productID string, params map[string]string) (config.ProductConfig, error) {
	product := g.cfg.Product(productID)

	overrides, err := config.ParseProductParameters(params)
	if err != nil {
		return product, err
	}

	if overrides.MultiDomain != nil {
		product.MultiDomain = overrides.MultiDomain
	}
	if overrides.Organization != "" {
		product.Organization = overrides.Organization
	}
	if overrides.Department != "" {
		product.Department = overrides.Department
	}
	return product, nil
}

type apiDirectory struct {
	api sectigo.API
}

func (d apiDirectory) Organizations(ctx context.Context) ([]models.Organization, error) {
	return d.api.ListOrganizations(ctx)
}

func (d apiDirectory) OrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error) {
	return d.api.GetOrganizationDetails(ctx, orgID)
}

func (d apiDirectory) Profiles(ctx context.Context) ([]models.Profile, error) {
	return d.api.ListSSLProfiles(ctx, 0)
}

func (d apiDirectory) CustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	return d.api.ListCustomFields(ctx)
}
