package sectigo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"scm-gateway/internal/models"
)

const personPageSize = 25

func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := c.doJSON(ctx, http.MethodGet, "organization/v1", "organization/v1", nil, &orgs); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// GetOrganizationDetails works for both organization and department ids.
func (c *Client) GetOrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error) {
	var details models.OrganizationDetails
	path := fmt.Sprintf("organization/v1/%d", orgID)
	if err := c.doJSON(ctx, http.MethodGet, "organization/v1/{id}", path, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to get organization %d: %w", orgID, err)
	}
	return &details, nil
}

// ListPersons pages through every person of an organization.
func (c *Client) ListPersons(ctx context.Context, orgID int) ([]models.Person, error) {
	var persons []models.Person
	for {
		q := url.Values{}
		q.Set("position", strconv.Itoa(len(persons)))
		q.Set("size", strconv.Itoa(personPageSize))
		q.Set("organizationId", strconv.Itoa(orgID))

		var page []models.Person
		if err := c.doJSON(ctx, http.MethodGet, "person/v1", "person/v1?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list persons of organization %d: %w", orgID, err)
		}

		persons = append(persons, page...)
		if len(page) < personPageSize {
			return persons, nil
		}
	}
}

func (c *Client) ListCustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	var fields []models.CustomFieldDefinition
	if err := c.doJSON(ctx, http.MethodGet, "ssl/v1/customFields", "ssl/v1/customFields", nil, &fields); err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}
	return fields, nil
}

// ListSSLProfiles lists the ssl certificate types, restricted to an organization when orgID is non-zero.
func (c *Client) ListSSLProfiles(ctx context.Context, orgID int) ([]models.Profile, error) {
	path := "ssl/v1/types"
	if orgID != 0 {
		path += "?organizationId=" + strconv.Itoa(orgID)
	}

	var profiles []models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "ssl/v1/types", path, nil, &profiles); err != nil {
		return nil, fmt.Errorf("failed to list ssl profiles: %w", err)
	}
	return profiles, nil
}
