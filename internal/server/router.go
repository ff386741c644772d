package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scm-gateway/internal/handlers"
	"scm-gateway/internal/middlewares"
)

// enrollTimeout covers the pickup settle and retry schedule of a single enrollment.
const enrollTimeout = 5 * time.Minute

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)

	if c := ctx.Config.Server.CORS; c != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: c.AllowedOrigins,
			AllowedMethods: c.AllowedMethods,
			AllowedHeaders: c.AllowedHeaders,
			MaxAge:         c.MaxAgeSeconds,
		}))
	}

	r.Use(middlewares.AppContextMiddleware(ctx))

	r.Get("/health", ctx.HandlerFunc(handlers.HandlerHealth))
	r.Get("/ready", ctx.HandlerFunc(handlers.HandlerReady))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.RequireToken)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(enrollTimeout))
			r.Post("/enroll", ctx.HandlerFunc(handlers.HandlerEnroll))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Route("/certificates/{requestID}", func(r chi.Router) {
				r.Get("/", ctx.HandlerFunc(handlers.HandlerGetCertificate))
				r.Post("/revoke", ctx.HandlerFunc(handlers.HandlerRevokeCertificate))
			})

			r.Get("/products", ctx.HandlerFunc(handlers.HandlerListProducts))
			r.Post("/products/{productID}/validate", ctx.HandlerFunc(handlers.HandlerValidateProduct))

			r.Get("/sync", ctx.HandlerFunc(handlers.HandlerSyncStatus))
			r.Post("/sync", ctx.HandlerFunc(handlers.HandlerTriggerSync))

			r.Delete("/cache", ctx.HandlerFunc(handlers.HandlerInvalidateCache))
			r.Post("/connection/validate", ctx.HandlerFunc(handlers.HandlerValidateConnection))
		})
	})

	return r
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Mount("/debug", middleware.Profiler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
