package handlers

import (
	"errors"
	"net/http"

	"github.com/hashicorp/go-multierror"

	"scm-gateway/internal/config"
	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/sectigo"
)

type connectionErrorsResponse struct {
	Errors []string `json:"errors"`
}

// HandlerValidateConnection checks host supplied connection data. With
// ping=true the parsed credentials are also tried against SCM.
func HandlerValidateConnection(ctx *middlewares.AppContext) {
	var data map[string]any
	if err := ctx.DecodeJSON(&data); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	caConfig, err := config.ParseConnectionData(data)
	if err != nil {
		ctx.WriteJSON(http.StatusUnprocessableEntity, connectionErrorsResponse{Errors: errorMessages(err)})
		return
	}

	if ctx.Request.URL.Query().Get("ping") == "true" {
		client, err := sectigo.NewClient(*caConfig, ctx.Logger)
		if err != nil {
			ctx.WriteJSON(http.StatusUnprocessableEntity, connectionErrorsResponse{Errors: []string{err.Error()}})
			return
		}
		if _, err := client.ListOrganizations(ctx); err != nil {
			writeError(ctx, err)
			return
		}
	}

	ctx.SetJSONStatus(http.StatusOK, "valid")
}

func errorMessages(err error) []string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		messages := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			messages = append(messages, e.Error())
		}
		return messages
	}
	return []string{err.Error()}
}
