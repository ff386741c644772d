package handlers

import (
	"context"
	"net/http"
	"time"

	"scm-gateway/internal/middlewares"
)

func HandlerHealth(ctx *middlewares.AppContext) {
	ctx.SetJSONStatus(http.StatusOK, "OK")
}

// HandlerReady reports whether SCM and the local store are reachable.
func HandlerReady(ctx *middlewares.AppContext) {
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if err := ctx.CA.Ping(checkCtx); err != nil {
		ctx.Logger.Warn("readiness check failed", "component", "scm", "error", err)
		checks["scm"] = err.Error()
		ready = false
	} else {
		checks["scm"] = "ok"
	}

	if ctx.Storage != nil {
		if err := ctx.Storage.Ping(checkCtx); err != nil {
			ctx.Logger.Warn("readiness check failed", "component", "storage", "error", err)
			checks["storage"] = err.Error()
			ready = false
		} else {
			checks["storage"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	ctx.WriteJSON(status, checks)
}
