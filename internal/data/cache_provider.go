package data

import (
	"fmt"
	"log/slog"

	"scm-gateway/internal/config"
)

// NewCacheProvider returns the lookup cache selected by cache.type.
func NewCacheProvider(cfg *config.Config, logger *slog.Logger) (CacheProvider, error) {
	switch cfg.Cache.Type {
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis cache selected but redis is not configured")
		}
		return NewRedisCache(cfg, logger)
	case "memory", "":
		return NewMemCache(logger), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}
