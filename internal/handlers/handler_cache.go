package handlers

import (
	"net/http"

	"scm-gateway/internal/middlewares"
)

func HandlerInvalidateCache(ctx *middlewares.AppContext) {
	if ctx.Cache == nil {
		ctx.SetJSONError(http.StatusNotImplemented, "lookup cache is not enabled")
		return
	}

	removed := ctx.Cache.Invalidate(ctx)
	ctx.Logger.Info("lookup cache invalidated", "removed", removed)
	ctx.WriteJSON(http.StatusOK, map[string]int{"removed": removed})
}
