package handlers

import (
	"net/http"
	"strconv"

	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/storage"
)

type syncStatusResponse struct {
	Running bool             `json:"running"`
	LastRun *storage.SyncRun `json:"last_run,omitempty"`
}

// HandlerTriggerSync queues a synchronization pass. full=true reconciles every
// record regardless of its stored status.
func HandlerTriggerSync(ctx *middlewares.AppContext) {
	if ctx.Sync == nil {
		ctx.SetJSONError(http.StatusNotImplemented, "synchronization is not enabled")
		return
	}

	fullSync := false
	if raw := ctx.Request.URL.Query().Get("full"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.SetJSONError(http.StatusBadRequest, "full must be a boolean")
			return
		}
		fullSync = parsed
	}

	if !ctx.Sync.Trigger(fullSync) {
		ctx.SetJSONError(http.StatusConflict, "a synchronization is already queued")
		return
	}

	ctx.Logger.Info("synchronization triggered", "full_sync", fullSync)
	ctx.SetJSONStatus(http.StatusAccepted, "queued")
}

func HandlerSyncStatus(ctx *middlewares.AppContext) {
	if ctx.Sync == nil || ctx.Storage == nil {
		ctx.SetJSONError(http.StatusNotImplemented, "synchronization is not enabled")
		return
	}

	last, err := ctx.Storage.GetLastSyncRun(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.WriteJSON(http.StatusOK, syncStatusResponse{Running: ctx.Sync.Running(), LastRun: last})
}
