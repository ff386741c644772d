package enrollment

import (
	"fmt"
	"strings"
)

// Subject holds the distinguished name attributes enrollment cares about.
type Subject struct {
	CommonName         string
	Organization       string
	OrganizationalUnit string
}

// ParseSubject reads CN, O and OU from a comma separated distinguished name.
// Escaped commas ("\,") are kept as part of the value.
func ParseSubject(dn string) (Subject, error) {
	var s Subject
	for _, rdn := range splitRDNs(dn) {
		key, value, ok := strings.Cut(rdn, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "CN":
			if s.CommonName == "" {
				s.CommonName = value
			}
		case "O":
			if s.Organization == "" {
				s.Organization = value
			}
		case "OU":
			if s.OrganizationalUnit == "" {
				s.OrganizationalUnit = value
			}
		}
	}

	if strings.TrimSpace(dn) != "" && s == (Subject{}) {
		return s, fmt.Errorf("subject %q has no recognised attributes", dn)
	}
	return s, nil
}

func splitRDNs(dn string) []string {
	var (
		parts   []string
		current strings.Builder
		escaped bool
	)
	for _, r := range dn {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	parts = append(parts, current.String())
	return parts
}
