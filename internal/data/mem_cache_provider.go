package data

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scm-gateway/internal/metrics"
)

type MemCache struct {
	cache  map[string]CachedData
	mutex  sync.RWMutex
	logger *slog.Logger
}

func NewMemCache(logger *slog.Logger) *MemCache {
	return &MemCache{
		cache:  make(map[string]CachedData),
		logger: logger,
	}
}

// Get returns a cached entry. Expired entries are removed and reported as missing.
func (d *MemCache) Get(ctx context.Context, name string) (CachedData, bool) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeMemory, metrics.CacheOperationTypeGet).Observe(time.Since(start).Seconds())
	}()

	d.mutex.RLock()
	cached, exists := d.cache[name]
	d.mutex.RUnlock()

	if !exists {
		return CachedData{}, false
	}

	if cached.Expired(time.Now()) {
		d.Delete(ctx, name)
		return CachedData{}, false
	}

	return cached, true
}

// ListAll returns the names of the cached entries
func (d *MemCache) ListAll(ctx context.Context) []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	keys := make([]string, 0, len(d.cache))
	for k := range d.cache {
		keys = append(keys, k)
	}

	return keys
}

// Set sets (or inserts) an entry
func (d *MemCache) Set(ctx context.Context, name string, data CachedData) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeMemory, metrics.CacheOperationTypeSet).Observe(time.Since(start).Seconds())
	}()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}
	data.Name = name
	d.cache[name] = data
}

// Delete removes an entry from the cache
func (d *MemCache) Delete(ctx context.Context, name string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.cache, name)
}

// Size returns the current number of elements in the cache
func (d *MemCache) Size(ctx context.Context) int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.cache)
}
