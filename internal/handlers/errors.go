package handlers

import (
	"context"
	"errors"
	"net/http"

	"scm-gateway/internal/config"
	"scm-gateway/internal/enrollment"
	"scm-gateway/internal/gateway"
	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/models"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/storage"
)

// writeError maps a gateway error onto a status code. The body carries the
// innermost error message, which is the one SCM or the lookup produced.
func writeError(ctx *middlewares.AppContext, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		ctx.Logger.Error("request failed", "path", ctx.Request.URL.Path, "error", err)
	} else {
		ctx.Logger.Debug("request rejected", "path", ctx.Request.URL.Path, "status", status, "error", err)
	}
	ctx.SetJSONError(status, enrollment.InnermostMessage(err))
}

func errorStatus(err error) int {
	var (
		apiErr     *sectigo.APIError
		unknownErr *models.UnknownStatusError
	)

	switch {
	case errors.Is(err, enrollment.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrInvalidRequestID),
		errors.Is(err, config.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrCertificateNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrUnknownProduct),
		enrollment.IsConfigurationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &unknownErr):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case sectigo.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
