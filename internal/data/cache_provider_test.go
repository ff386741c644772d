package data

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scm-gateway/internal/config"
)

func setupMemCache() *MemCache {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewMemCache(logger)
}

func TestMemCache(t *testing.T) {
	ctx := context.Background()
	cache := setupMemCache()

	cache.Set(ctx, "profiles", CachedData{JSONBytes: []byte(`[{"id":77}]`)})
	cache.Set(ctx, "organizations", CachedData{JSONBytes: []byte(`[]`), ExpiresAt: time.Now().Add(time.Minute)})

	got, ok := cache.Get(ctx, "profiles")
	require.True(t, ok)
	assert.Equal(t, "profiles", got.Name)
	assert.False(t, got.Timestamp.IsZero())
	assert.ElementsMatch(t, []string{"profiles", "organizations"}, cache.ListAll(ctx))
	assert.Equal(t, 2, cache.Size(ctx))

	cache.Delete(ctx, "profiles")
	_, ok = cache.Get(ctx, "profiles")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Size(ctx))
}

func TestMemCache_ExpiredEntriesAreDropped(t *testing.T) {
	ctx := context.Background()
	cache := setupMemCache()

	cache.Set(ctx, "stale", CachedData{ExpiresAt: time.Now().Add(-time.Second)})

	_, ok := cache.Get(ctx, "stale")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size(ctx))
}

func TestCachedData_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, CachedData{}.Expired(now))
	assert.False(t, CachedData{ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, CachedData{ExpiresAt: now}.Expired(now))
}

func TestNewCacheProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	provider, err := NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "memory"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemCache{}, provider)

	_, err = NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "redis"}}, logger)
	assert.Error(t, err)

	_, err = NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "disk"}}, logger)
	assert.Error(t, err)
}

func BenchmarkMemCache_Get(b *testing.B) {
	ctx := context.Background()
	cache := setupMemCache()
	cache.Set(ctx, "profiles", CachedData{JSONBytes: make([]byte, 4096), ExpiresAt: time.Now().Add(time.Hour)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(ctx, "profiles")
	}
}
