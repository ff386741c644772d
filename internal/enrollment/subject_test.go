package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		name    string
		dn      string
		want    Subject
		wantErr bool
	}{
		{
			name: "full subject",
			dn:   "CN=www.example.com,O=Acme Corp,OU=Web,C=US",
			want: Subject{CommonName: "www.example.com", Organization: "Acme Corp", OrganizationalUnit: "Web"},
		},
		{
			name: "spaces and lowercase keys",
			dn:   "cn = api.example.com , o = Acme",
			want: Subject{CommonName: "api.example.com", Organization: "Acme"},
		},
		{
			name: "escaped comma in organization",
			dn:   `CN=a.com,O=Acme\, Inc.`,
			want: Subject{CommonName: "a.com", Organization: "Acme, Inc."},
		},
		{
			name: "empty subject",
			dn:   "",
			want: Subject{},
		},
		{
			name:    "garbage",
			dn:      "not a distinguished name",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSubject(tt.dn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSANList(t *testing.T) {
	tests := []struct {
		name        string
		commonName  string
		sans        []string
		multiDomain bool
		want        string
	}{
		{"single domain drops cn among others", "a.com", []string{"a.com", "b.com"}, false, "b.com"},
		{"multi domain drops cn among others", "a.com", []string{"a.com", "b.com"}, true, "b.com"},
		{"single domain keeps cn when alone", "a.com", []string{"a.com"}, false, "a.com"},
		{"multi domain drops cn when alone", "a.com", []string{"a.com"}, true, ""},
		{"cn absent keeps everything", "a.com", []string{"b.com", "c.com"}, false, "b.com,c.com"},
		{"no common name", "", []string{"b.com", "c.com"}, true, "b.com,c.com"},
		{"blank entries ignored", "a.com", []string{" ", "b.com", ""}, false, "b.com"},
		{"no sans", "a.com", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSANList(tt.commonName, tt.sans, tt.multiDomain))
		})
	}
}
