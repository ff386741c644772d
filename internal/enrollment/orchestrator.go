package enrollment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"scm-gateway/internal/config"
	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
)

// ParamRequester names the enrollment parameter holding the requesting user.
const ParamRequester = "Requester"

// Directory resolves account metadata. Implementations may cache.
type Directory interface {
	Organizations(ctx context.Context) ([]models.Organization, error)
	OrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error)
	Profiles(ctx context.Context) ([]models.Profile, error)
	CustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error)
}

// Submitter sends enrollment requests to SCM.
type Submitter interface {
	Enroll(ctx context.Context, req models.EnrollmentRequest) (*models.EnrollResponse, error)
	Renew(ctx context.Context, sslID int) (*models.EnrollResponse, error)
	Reissue(ctx context.Context, sslID int, req models.ReissueRequest) error
	GetCertificate(ctx context.Context, sslID int) (*models.RemoteCertificate, error)
}

// Input is everything an enrollment call needs.
type Input struct {
	CSR            string
	Subject        string
	SANs           []string
	ProductID      string
	Product        config.ProductConfig
	Parameters     map[string]string
	Type           models.EnrollmentType
	PriorRequestID string
}

type Orchestrator struct {
	directory Directory
	submitter Submitter
	poller    *Poller
	logger    *slog.Logger
	cfg       config.CAConfig
}

func NewOrchestrator(directory Directory, submitter Submitter, poller *Poller, logger *slog.Logger, cfg config.CAConfig) *Orchestrator {
	return &Orchestrator{
		directory: directory,
		submitter: submitter,
		poller:    poller,
		logger:    logger,
		cfg:       cfg,
	}
}

// Enroll validates the request against the account configuration, submits it
// and waits for the certificate to be issued. A certificate that still needs
// approval is reported as a pending approval result, not an error.
func (o *Orchestrator) Enroll(ctx context.Context, in Input) (*models.EnrollmentResult, error) {
	result, err := o.enroll(ctx, in)

	outcome := "error"
	if err == nil {
		outcome = string(result.Outcome)
	}
	metrics.EnrollmentsTotal.WithLabelValues(string(in.Type), outcome).Inc()

	if err != nil {
		o.logger.Error("enrollment failed", "type", in.Type, "subject", in.Subject, "error", err)
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) enroll(ctx context.Context, in Input) (*models.EnrollmentResult, error) {
	if !o.cfg.IsEnabled() {
		return nil, configError(ErrDisabled, "the CA is disabled and must be enabled to enroll")
	}

	if in.Type == "" {
		in.Type = models.EnrollmentNew
	}

	o.logger.Info("begin enrollment", "type", in.Type, "subject", in.Subject, "product_id", in.ProductID)

	subject, err := ParseSubject(in.Subject)
	if err != nil {
		return nil, err
	}

	orgName := in.Product.Organization
	if orgName == "" {
		orgName = subject.Organization
	}
	if orgName == "" {
		return nil, configError(ErrMissingOrganization, "the request is missing an O= value and no organization is configured for product %s", in.ProductID)
	}

	orgID, err := o.resolveOrganization(ctx, orgName, in.Product.Department, subject.OrganizationalUnit)
	if err != nil {
		return nil, err
	}

	customFields, err := o.resolveCustomFields(ctx, in)
	if err != nil {
		return nil, err
	}

	profile, err := o.resolveProfile(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	sanList := BuildSANList(subject.CommonName, in.SANs, in.Product.IsMultiDomain())

	sslID, err := o.submit(ctx, in, subject, models.EnrollmentRequest{
		OrgID:             orgID,
		CSR:               in.CSR,
		SubjAltNames:      sanList,
		CertType:          profile.ID,
		NumberServers:     1,
		ServerType:        -1,
		Term:              profile.Terms[0],
		Comments:          requesterComment(in.Parameters),
		CustomFields:      customFields,
		ExternalRequester: o.externalRequester(in.Parameters),
	})
	if err != nil {
		return nil, err
	}

	detail, err := o.submitter.GetCertificate(ctx, sslID)
	if err != nil {
		return nil, fmt.Errorf("failed to get details of enrolled certificate %d: %w", sslID, err)
	}

	o.logger.Debug("enrolled for certificate", "ssl_id", sslID, "common_name", detail.CommonName, "status", detail.Status)

	status, err := models.ClassifyStatusForID(sslID, detail.Status)
	if err != nil {
		return nil, err
	}

	if status != models.StatusIssued {
		o.logger.Info("certificate has not been issued, it will be picked up during synchronization after approval",
			"ssl_id", sslID, "common_name", detail.CommonName, "status", detail.Status)
		return models.PendingApprovalResult(sslID,
			"Certificate requires approval. Certificate will be picked up during synchronization after approval."), nil
	}

	return o.poller.Poll(ctx, sslID, detail.CommonName)
}

func (o *Orchestrator) resolveOrganization(ctx context.Context, orgName, department, ou string) (int, error) {
	orgs, err := o.directory.Organizations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list organizations: %w", err)
	}

	org, ok := models.FindOrganization(orgs, orgName)
	if !ok {
		return 0, configError(ErrOrganizationNotFound, "unable to find organization by name %s", orgName)
	}

	if department != "" {
		if len(org.Departments) == 0 {
			return 0, configError(ErrDepartmentNotFound, "department %s not found: no departments found in organization %s", department, orgName)
		}

		dep, ok := org.FindDepartment(department)
		if !ok {
			return 0, configError(ErrDepartmentNotFound, "%s does not exist as a department of %s, please verify configuration", department, orgName)
		}

		details, err := o.directory.OrganizationDetails(ctx, dep.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to get details of department %s: %w", department, err)
		}
		if !details.HasCertTypes() {
			return 0, configError(ErrNoCertificateTypes, "department %s does not contain a valid certificate type configuration, please verify account configuration", department)
		}

		o.logger.Debug("department is valid", "department", dep.Name, "id", dep.ID)
		return dep.ID, nil
	}

	details, err := o.directory.OrganizationDetails(ctx, org.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get details of organization %s: %w", orgName, err)
	}
	if !details.HasCertTypes() {
		if ou != "" {
			o.logger.Warn("the OU subject field is no longer used to select a department; configure the department on the product instead", "ou", ou)
		}
		return 0, configError(ErrNoCertificateTypes, "organization %s does not contain a valid certificate type configuration and no department was specified, please verify account configuration", orgName)
	}

	o.logger.Debug("organization is valid", "organization", org.Name, "id", org.ID)
	return org.ID, nil
}

// resolveCustomFields checks every mandatory field has a value and returns the values to send.
func (o *Orchestrator) resolveCustomFields(ctx context.Context, in Input) ([]models.CustomField, error) {
	defs, err := o.directory.CustomFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}

	var fields []models.CustomField
	for _, def := range defs {
		value := strings.TrimSpace(in.Parameters[def.Name])
		if value == "" {
			if def.Mandatory {
				return nil, configError(ErrMissingCustomField,
					"product %s or enrollment fields do not contain a value for mandatory custom field %s", in.ProductID, def.Name)
			}
			continue
		}
		fields = append(fields, models.CustomField{Name: def.Name, Value: value})
	}
	return fields, nil
}

func (o *Orchestrator) resolveProfile(ctx context.Context, productID string) (models.Profile, error) {
	id, err := strconv.Atoi(strings.TrimSpace(productID))
	if err != nil {
		return models.Profile{}, configError(ErrProfileNotFound, "product id %q is not an ssl profile id", productID)
	}

	profiles, err := o.directory.Profiles(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to list ssl profiles: %w", err)
	}

	for _, p := range profiles {
		if p.ID == id {
			if len(p.Terms) == 0 {
				return models.Profile{}, configError(ErrProfileNotFound, "ssl profile %d has no terms configured", id)
			}
			o.logger.Debug("found profile for enroll request", "profile", p.Name, "id", p.ID)
			return p, nil
		}
	}
	return models.Profile{}, configError(ErrProfileNotFound, "unable to find ssl profile with id %d", id)
}

func (o *Orchestrator) submit(ctx context.Context, in Input, subject Subject, req models.EnrollmentRequest) (int, error) {
	kind := in.Type
	if kind == models.EnrollmentRenewOrReissue {
		kind = models.EnrollmentNew
		if in.PriorRequestID != "" {
			kind = models.EnrollmentRenew
		}
	}

	o.logger.Debug("submitting request", "type", kind, "org_id", req.OrgID, "cert_type", req.CertType, "term", req.Term)

	switch kind {
	case models.EnrollmentNew:
		resp, err := o.submitter.Enroll(ctx, req)
		if err != nil {
			return 0, err
		}
		return resp.SSLID, nil

	case models.EnrollmentRenew:
		priorID, err := o.priorSSLID(in)
		if err != nil {
			return 0, err
		}
		resp, err := o.submitter.Renew(ctx, priorID)
		if err != nil {
			return 0, err
		}
		return resp.SSLID, nil

	case models.EnrollmentReissue:
		priorID, err := o.priorSSLID(in)
		if err != nil {
			return 0, err
		}
		err = o.submitter.Reissue(ctx, priorID, models.ReissueRequest{
			CSR:                     in.CSR,
			Reason:                  "Reissue requested by certificate gateway",
			CommonName:              subject.CommonName,
			SubjectAlternativeNames: splitSANList(req.SubjAltNames),
		})
		if err != nil {
			return 0, err
		}
		return priorID, nil

	default:
		return 0, configError(ErrUnsupportedEnrollment, "unsupported enrollment type %s", in.Type)
	}
}

func (o *Orchestrator) priorSSLID(in Input) (int, error) {
	if in.PriorRequestID == "" {
		return 0, configError(ErrPriorRequestRequired, "%s enrollment requires the request id of the certificate being replaced", in.Type)
	}
	return models.ParseRequestID(in.PriorRequestID)
}

// externalRequester is expected to be an email; SCM defaults to the API account when it is empty.
func (o *Orchestrator) externalRequester(params map[string]string) string {
	if o.cfg.ExternalRequestorFieldName == "" {
		return ""
	}
	return strings.TrimSpace(params[o.cfg.ExternalRequestorFieldName])
}

func requesterComment(params map[string]string) string {
	if requester := strings.TrimSpace(params[ParamRequester]); requester != "" {
		return "CERTIFICATE_REQUESTOR: " + requester
	}
	return ""
}

func splitSANList(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ",")
}
