package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scm-gateway/internal/config"
	"scm-gateway/internal/jobs"
	"scm-gateway/internal/middlewares"
)

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	app         *App
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	jobManager  *jobs.JobManager
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger := SetupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	if len(cfg.Server.APITokens) == 0 {
		logger.Warn("no api tokens configured, the api accepts unauthenticated requests")
	}

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, app.Gateway, app.Storage, nil, app.Directory)
	if app.SyncJob != nil {
		appCtx.Sync = app.SyncJob
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(appCtx),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler:           setupDebugRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		app:         app,
		appCtx:      appCtx,
		httpServer:  server,
		debugServer: debugServer,
		jobManager:  app.NewJobManager(),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func (s *Server) Start() error {
	defer s.app.Close()

	if err := s.app.Gateway.Ping(s.ctx); err != nil {
		s.logger.Warn("scm is not reachable at startup", "error", err)
	}

	if s.app.Election != nil {
		go s.app.Election.Start(s.ctx)
	}

	s.jobManager.Start(s.ctx)

	go func() {
		if s.app.Election != nil {
			s.logger.Info("server started", "port", s.cfg.Server.Port, "instance", s.app.Election.InstanceID)
		} else {
			s.logger.Info("server started", "port", s.cfg.Server.Port)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		s.logger.Info("shutdown signal received")
	case <-s.ctx.Done():
		s.logger.Info("context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server forced to shutdown", "error", err)
	}

	s.cancel()
	s.jobManager.Shutdown(shutdownCtx)

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("debug server forced to shutdown", "error", err)
		}
	}

	s.logger.Info("server exited")
	return nil
}
