package middlewares

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scm-gateway/internal/config"
	"scm-gateway/internal/storage"
)

// AppContext carries the request and the shared services into every handler.
// Storage, Sync and Cache are nil when the matching feature is disabled.
type AppContext struct {
	context.Context
	Config  *config.Config
	Logger  *slog.Logger
	CA      CertificateAuthority
	Storage storage.StorageProvider
	Sync    SyncTrigger
	Cache   CacheInvalidator

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := baseCtx.Logger
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				logger = logger.With("http_request_id", reqID)
			}

			requestCtx := &AppContext{
				Context:  r.Context(),
				Config:   baseCtx.Config,
				Logger:   logger,
				CA:       baseCtx.CA,
				Storage:  baseCtx.Storage,
				Sync:     baseCtx.Sync,
				Cache:    baseCtx.Cache,
				Request:  r,
				Response: w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h(appCtx)
	}
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, ca CertificateAuthority, store storage.StorageProvider, sync SyncTrigger, cache CacheInvalidator) *AppContext {
	return &AppContext{
		Context: ctx,
		Config:  cfg,
		Logger:  logger,
		CA:      ca,
		Storage: store,
		Sync:    sync,
		Cache:   cache,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

// URLParam reads a chi route parameter of the current request.
func (ctx *AppContext) URLParam(key string) string {
	return chi.URLParam(ctx.Request, key)
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func (ctx *AppContext) DecodeJSON(v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(ctx.Response, ctx.Request.Body, 1<<20))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}
