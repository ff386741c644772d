package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"

	"scm-gateway/internal/config"
	"scm-gateway/internal/metrics"
)

const redisKeyPrefix = "scm:lookup:"

// RedisCacheClient is the part of the redis client the cache uses.
type RedisCacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
	PoolStats() *redis.PoolStats
	Close() error
}

type RedisCache struct {
	client RedisCacheClient
	logger *slog.Logger
}

// NewRedisCache connects to the cache database and checks the connection.
func NewRedisCache(cfg *config.Config, logger *slog.Logger) (*RedisCache, error) {
	client := NewRedisClient(cfg.Redis, cfg.Redis.CacheIndex, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, "cache", client)
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis cache collector: already registered", "error", err)
		}
	}

	return &RedisCache{
		client: client,
		logger: logger,
	}, nil
}

// key generates a namespaced redis key
func (r *RedisCache) key(name string) string {
	return redisKeyPrefix + name
}

// ClosePool closes the redis connection pool
func (r *RedisCache) ClosePool() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, name string) (CachedData, bool) {
	start := time.Now()
	defer r.observe(metrics.CacheOperationTypeGet, start)

	raw, err := r.client.Get(ctx, r.key(name)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("error executing redis GET", "key", name, "error", err)
		}
		return CachedData{}, false
	}

	var cached CachedData
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		r.logger.Error("error unmarshalling redis response", "key", name, "error", err)
		return CachedData{}, false
	}

	return cached, true
}

func (r *RedisCache) ListAll(ctx context.Context) []string {
	keys, err := r.client.Keys(ctx, r.key("*")).Result()
	if err != nil {
		r.logger.Error("error executing redis KEYS", "error", err)
		return []string{}
	}

	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result, strings.TrimPrefix(key, redisKeyPrefix))
	}
	return result
}

// Set stores data, letting redis expire it at data.ExpiresAt.
func (r *RedisCache) Set(ctx context.Context, name string, data CachedData) {
	start := time.Now()
	defer r.observe(metrics.CacheOperationTypeSet, start)

	var ttl time.Duration
	if !data.ExpiresAt.IsZero() {
		ttl = time.Until(data.ExpiresAt)
		if ttl <= 0 {
			return
		}
	}

	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}
	data.Name = name

	payload, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("error marshalling cached data", "key", name, "error", err)
		return
	}

	if err := r.client.Set(ctx, r.key(name), payload, ttl).Err(); err != nil {
		r.logger.Error("error executing redis SET", "key", name, "error", err)
	}
}

// Delete removes an entry from the cache
func (r *RedisCache) Delete(ctx context.Context, name string) {
	start := time.Now()
	defer r.observe(metrics.CacheOperationTypeDelete, start)

	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		r.logger.Error("error executing redis DEL", "key", name, "error", err)
	}
}

// Size returns the current number of entries in the cache
func (r *RedisCache) Size(ctx context.Context) int {
	keys, err := r.client.Keys(ctx, r.key("*")).Result()
	if err != nil {
		r.logger.Error("error executing redis KEYS", "error", err)
		return 0
	}
	return len(keys)
}

func (r *RedisCache) observe(operation string, start time.Time) {
	metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, operation).Observe(time.Since(start).Seconds())
}
