package handlers

import (
	"net/http"

	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/models"
)

type revokeRequest struct {
	ReasonCode int `json:"reason_code"`
}

type revokeResponse struct {
	RequestID string                   `json:"request_id"`
	Status    models.CertificateStatus `json:"status"`
}

// HandlerGetCertificate returns the current SCM state of a certificate, or the
// locally stored record when source=local.
func HandlerGetCertificate(ctx *middlewares.AppContext) {
	requestID := ctx.URLParam("requestID")

	if ctx.Request.URL.Query().Get("source") == "local" {
		if ctx.Storage == nil {
			ctx.SetJSONError(http.StatusNotImplemented, "storage is not enabled")
			return
		}
		record, err := ctx.Storage.GetCertificate(ctx, requestID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.WriteJSON(http.StatusOK, record)
		return
	}

	record, err := ctx.CA.GetSingleRecord(ctx, requestID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.WriteJSON(http.StatusOK, record)
}

func HandlerRevokeCertificate(ctx *middlewares.AppContext) {
	requestID := ctx.URLParam("requestID")

	var req revokeRequest
	if err := ctx.DecodeJSON(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	status, err := ctx.CA.Revoke(ctx, requestID, req.ReasonCode)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Logger.Info("certificate revoked", "request_id", requestID, "reason_code", req.ReasonCode)
	ctx.WriteJSON(http.StatusOK, revokeResponse{RequestID: requestID, Status: status})
}
