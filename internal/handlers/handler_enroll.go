package handlers

import (
	"net/http"
	"strings"

	"scm-gateway/internal/gateway"
	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/models"
)

// HandlerEnroll submits a new, renew or reissue enrollment. A pending result
// is answered with 202 and no certificate.
func HandlerEnroll(ctx *middlewares.AppContext) {
	var req gateway.EnrollRequest
	if err := ctx.DecodeJSON(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.CSR) == "" {
		ctx.SetJSONError(http.StatusBadRequest, "csr is required")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		ctx.SetJSONError(http.StatusBadRequest, "product_id is required")
		return
	}

	enrollmentType, err := models.ParseEnrollmentType(string(req.Type))
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, err.Error())
		return
	}
	req.Type = enrollmentType

	ctx.Logger.Info("enrollment requested", "type", req.Type, "product_id", req.ProductID, "subject", req.Subject)

	result, err := ctx.CA.Enroll(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}

	status := http.StatusOK
	if !result.Complete() {
		status = http.StatusAccepted
	}
	ctx.WriteJSON(status, result)
}
