package data

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"scm-gateway/internal/config"
)

// NewRedisClient connects to redis directly or through sentinel, using database db.
func NewRedisClient(cfg *config.RedisConfig, db int, logger *slog.Logger) *redis.Client {
	if cfg.Sentinel != nil {
		logger.Info("connecting to redis via sentinel",
			"master", cfg.Sentinel.MasterName,
			"sentinels", cfg.Sentinel.SentinelAddresses,
			"db", db)

		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Sentinel.MasterName,
			SentinelAddrs:    cfg.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Sentinel.SentinelPassword,
			Username:         cfg.Username,
			Password:         cfg.Password,
			DB:               db,
			MinIdleConns:     2,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           db,
		MinIdleConns: 2,
	})
}
