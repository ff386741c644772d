package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"scm-gateway/internal/enrollment"
	"scm-gateway/internal/gateway"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
)

const enrollBody = `{"csr":"-----BEGIN CERTIFICATE REQUEST-----","subject":"CN=a.com","sans":["a.com","b.com"],"product_id":"77","parameters":{"CostCenter":"42"}}`

func TestHandlerEnroll(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", enrollBody)
		tc.MockCA.EXPECT().
			Enroll(gomock.Any(), gomock.Cond(func(req gateway.EnrollRequest) bool {
				return req.Type == models.EnrollmentNew && req.ProductID == "77" && req.Parameters["CostCenter"] == "42"
			})).
			Return(&models.EnrollmentResult{
				RequestID:   "1000",
				Certificate: "MAE=",
				Status:      models.StatusIssued,
				Outcome:     models.OutcomeComplete,
			}, nil)

		tc.callHandler(HandlerEnroll)

		tc.assertStatus(t, http.StatusOK)
		tc.assertJSONField(t, "certificate", "MAE=")
	})

	t.Run("pending approval", func(t *testing.T) {
		tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", enrollBody)
		tc.MockCA.EXPECT().Enroll(gomock.Any(), gomock.Any()).
			Return(models.PendingApprovalResult(1000, "awaiting approval"), nil)

		tc.callHandler(HandlerEnroll)

		tc.assertStatus(t, http.StatusAccepted)
	})

	t.Run("configuration error", func(t *testing.T) {
		tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", enrollBody)
		tc.MockCA.EXPECT().Enroll(gomock.Any(), gomock.Any()).
			Return(nil, &enrollment.ConfigurationError{Kind: enrollment.ErrDepartmentNotFound, Message: "department Web not found"})

		tc.callHandler(HandlerEnroll)

		tc.assertStatus(t, http.StatusUnprocessableEntity)
		tc.assertJSONField(t, "error", "department Web not found")
	})

	t.Run("remote error surfaces description", func(t *testing.T) {
		tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", enrollBody)
		tc.MockCA.EXPECT().Enroll(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("enrollment failed: %w", &sectigo.APIError{StatusCode: 400, Code: -16, Description: "Unknown user"}))

		tc.callHandler(HandlerEnroll)

		tc.assertStatus(t, http.StatusBadGateway)
		tc.assertJSONField(t, "error", "-16 | Unknown user")
	})

	t.Run("disabled", func(t *testing.T) {
		tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", enrollBody)
		tc.MockCA.EXPECT().Enroll(gomock.Any(), gomock.Any()).Return(nil, enrollment.ErrDisabled)

		tc.callHandler(HandlerEnroll)

		tc.assertStatus(t, http.StatusServiceUnavailable)
	})
}

func TestHandlerEnroll_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: `csr=abc`, want: "invalid request body"},
		{name: "unknown field", body: `{"csr":"x","product_id":"1","bogus":true}`, want: "invalid request body"},
		{name: "missing csr", body: `{"product_id":"77"}`, want: "csr is required"},
		{name: "missing product", body: `{"csr":"x"}`, want: "product_id is required"},
		{name: "bad type", body: `{"csr":"x","product_id":"77","type":"rekey"}`, want: "unsupported enrollment type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestContext(t, http.MethodPost, "/api/v1/enroll", tt.body)

			tc.callHandler(HandlerEnroll)

			tc.assertStatus(t, http.StatusBadRequest)
			assert.Contains(t, tc.jsonResponse(t)["error"], tt.want)
		})
	}
}
