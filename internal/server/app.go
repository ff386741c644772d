package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"

	"scm-gateway/internal/config"
	"scm-gateway/internal/data"
	"scm-gateway/internal/distributed"
	"scm-gateway/internal/gateway"
	"scm-gateway/internal/jobs"
	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
	"scm-gateway/internal/reconcile"
	"scm-gateway/internal/sectigo"
	"scm-gateway/internal/storage"
)

// App holds the long lived components shared by the server and the one-shot commands.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Client    *sectigo.Client
	Cache     data.CacheProvider
	Directory *data.Directory
	Storage   storage.StorageProvider
	Gateway   *gateway.Gateway
	Election  *distributed.Election
	SyncJob   *jobs.SyncJob
}

// NewApp connects to SCM, the lookup cache and, when enabled, the local store
// and the leader election backend.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	client, err := sectigo.NewClient(cfg.CA, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scm client: %w", err)
	}

	cache, err := data.NewCacheProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up cache provider: %w", err)
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Cache:     cache,
		Directory: data.NewDirectory(client, cache, logger, cfg.Cache.TTL),
	}

	var lookup reconcile.RecordLookup = emptyLookup{}
	if cfg.Storage != nil && cfg.Storage.Enabled {
		db, err := storage.NewDatabaseProvider(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize database provider: %w", err)
		}
		app.Storage = db

		logger.Debug("running database migrations")
		if err := db.RunMigrations(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		logger.Debug("database migrations completed")
		lookup = db
	}

	app.Gateway = gateway.New(client, app.Directory, lookup, logger, cfg)

	if cfg.Sync.Enabled && app.Storage != nil {
		app.SyncJob = jobs.NewSyncJob(app.Gateway, app.Storage, cfg.Sync.Interval, cfg.Sync.QueueCapacity, logger)
	}

	if cfg.Distributed != nil && cfg.Distributed.Enabled {
		app.Election = newElection(cfg, logger)
	}

	return app, nil
}

func newElection(cfg *config.Config, logger *slog.Logger) *distributed.Election {
	client := data.NewRedisClient(cfg.Redis, cfg.Redis.LeaderIndex, logger)

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, "election", client)
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis election collector: already registered", "error", err)
		}
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = uuid.New().String()
	}

	return &distributed.Election{
		Redis:      client,
		InstanceID: hostname,
		TTL:        cfg.Distributed.TTL,
		Logger:     logger,
	}
}

// NewJobManager registers the background jobs of this replica.
func (a *App) NewJobManager() *jobs.JobManager {
	var leadership jobs.Leadership
	if a.Election != nil {
		leadership = a.Election
	}

	jm := jobs.NewJobManager(leadership, a.Logger)
	jm.Register(jobs.NewDirectoryWarmJob(a.Directory, a.Config.Cache.TTL, a.Logger))
	if a.SyncJob != nil {
		jm.Register(a.SyncJob)
	}
	return jm
}

func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
	}
	if closer, ok := a.Cache.(interface{ ClosePool() error }); ok {
		if err := closer.ClosePool(); err != nil {
			a.Logger.Warn("failed to close cache connection", "error", err)
		}
	}
	if a.Election != nil {
		if err := a.Election.Redis.Close(); err != nil {
			a.Logger.Warn("failed to close election connection", "error", err)
		}
	}
}

// emptyLookup treats every remote certificate as new when no local store is configured.
type emptyLookup struct{}

func (emptyLookup) LookupBySerial(ctx context.Context, serialNumber string) (*models.LocalRecord, error) {
	return nil, nil
}
