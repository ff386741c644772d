package models

import "strings"

type Organization struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Departments []Department `json:"departments"`
}

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OrganizationDetails is the detail view of an organization or department.
type OrganizationDetails struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	CertTypes []string `json:"certTypes"`
}

func (d OrganizationDetails) HasCertTypes() bool {
	return len(d.CertTypes) > 0
}

// FindOrganization returns the organization whose name matches, ignoring case.
func FindOrganization(orgs []Organization, name string) (Organization, bool) {
	for _, org := range orgs {
		if strings.EqualFold(org.Name, name) {
			return org, true
		}
	}
	return Organization{}, false
}

// FindDepartment returns the department of org whose name matches, ignoring case.
func (o Organization) FindDepartment(name string) (Department, bool) {
	for _, dep := range o.Departments {
		if strings.EqualFold(dep.Name, name) {
			return dep, true
		}
	}
	return Department{}, false
}

type Person struct {
	ID              int      `json:"id"`
	FirstName       string   `json:"firstName"`
	MiddleName      string   `json:"middleName,omitempty"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	OrganizationID  int      `json:"organizationId"`
	ValidationType  string   `json:"validationType"`
	Phone           string   `json:"phone,omitempty"`
	SecondaryEmails []string `json:"secondaryEmails,omitempty"`
	CommonName      string   `json:"commonName"`
}

// CustomFieldDefinition is a custom field declared on the SCM account.
type CustomFieldDefinition struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Mandatory bool   `json:"mandatory"`
}

// CustomField is a custom field value sent with an enrollment.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
