package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"scm-gateway/internal/models"
	"scm-gateway/internal/testutil"
)

func TestHandlerValidateConnection_MissingKeys(t *testing.T) {
	tc := newTestContext(t, http.MethodPost, "/api/v1/connection/validate", `{"CustomerUri":"acme"}`)

	tc.callHandler(HandlerValidateConnection)

	tc.assertStatus(t, http.StatusUnprocessableEntity)
	errs := tc.jsonResponse(t)["errors"].([]any)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs[0], "ApiEndpoint")
	assert.Contains(t, errs[1], "AuthType")
}

func TestHandlerValidateConnection_Valid(t *testing.T) {
	body := `{"ApiEndpoint":"https://hard.cert-manager.com/","AuthType":"password","CustomerUri":"acme","Username":"u","Password":"p","PageSize":500}`
	tc := newTestContext(t, http.MethodPost, "/api/v1/connection/validate", body)

	tc.callHandler(HandlerValidateConnection)

	tc.assertStatus(t, http.StatusOK)
	tc.assertJSONField(t, "status", "valid")
}

func TestHandlerValidateConnection_Ping(t *testing.T) {
	fake := testutil.NewFakeSCM()
	defer fake.Close()
	fake.Organizations = []models.Organization{{ID: 1, Name: "Acme"}}

	body := `{"ApiEndpoint":"` + fake.Server.URL + `","AuthType":"password","CustomerUri":"` + fake.CustomerURI +
		`","Username":"` + fake.Login + `","Password":"` + fake.Password + `"}`
	tc := newTestContext(t, http.MethodPost, "/api/v1/connection/validate?ping=true", body)

	tc.callHandler(HandlerValidateConnection)

	tc.assertStatus(t, http.StatusOK)
}
