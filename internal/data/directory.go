package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"scm-gateway/internal/metrics"
	"scm-gateway/internal/models"
)

const (
	keyOrganizations = "organizations"
	keyProfiles      = "profiles"
	keyCustomFields  = "custom_fields"
	keyOrgDetails    = "organization:"
)

// Source is where Directory loads account metadata from on a miss.
type Source interface {
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	GetOrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error)
	ListSSLProfiles(ctx context.Context, orgID int) ([]models.Profile, error)
	ListCustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error)
}

// Directory serves organizations, ssl profiles and custom field definitions
// from the cache, loading them from the source at most once per key at a time.
type Directory struct {
	source Source
	cache  CacheProvider
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewDirectory(source Source, cache CacheProvider, logger *slog.Logger, ttl time.Duration) *Directory {
	return &Directory{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (d *Directory) Organizations(ctx context.Context) ([]models.Organization, error) {
	return load(ctx, d, keyOrganizations, d.source.ListOrganizations)
}

func (d *Directory) OrganizationDetails(ctx context.Context, orgID int) (*models.OrganizationDetails, error) {
	return load(ctx, d, keyOrgDetails+strconv.Itoa(orgID), func(ctx context.Context) (*models.OrganizationDetails, error) {
		return d.source.GetOrganizationDetails(ctx, orgID)
	})
}

func (d *Directory) Profiles(ctx context.Context) ([]models.Profile, error) {
	return load(ctx, d, keyProfiles, func(ctx context.Context) ([]models.Profile, error) {
		return d.source.ListSSLProfiles(ctx, 0)
	})
}

func (d *Directory) CustomFields(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	return load(ctx, d, keyCustomFields, d.source.ListCustomFields)
}

// Invalidate drops every cached entry so the next lookups go to the source.
func (d *Directory) Invalidate(ctx context.Context) int {
	keys := d.cache.ListAll(ctx)
	for _, key := range keys {
		d.cache.Delete(ctx, key)
	}
	d.logger.Info("lookup cache invalidated", "entries", len(keys))
	return len(keys)
}

func load[T any](ctx context.Context, d *Directory, key string, fetch func(context.Context) (T, error)) (T, error) {
	if cached, ok := d.cache.Get(ctx, key); ok && !cached.Expired(time.Now()) {
		var value T
		if err := json.Unmarshal(cached.JSONBytes, &value); err == nil {
			metrics.CacheHits.WithLabelValues(key).Inc()
			return value, nil
		}
		d.logger.Warn("discarding unreadable cache entry", "key", key)
		d.cache.Delete(ctx, key)
	}
	metrics.CacheMisses.WithLabelValues(key).Inc()

	v, err, shared := d.group.Do(key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return value, err
		}

		payload, err := json.Marshal(value)
		if err != nil {
			return value, fmt.Errorf("failed to encode %s for caching: %w", key, err)
		}

		now := time.Now()
		entry := CachedData{JSONBytes: payload, Timestamp: now}
		if d.ttl > 0 {
			entry.ExpiresAt = now.Add(d.ttl)
		}
		d.cache.Set(ctx, key, entry)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	d.logger.Debug("loaded lookup data", "key", key, "shared", shared)
	return v.(T), nil
}
