package data

import (
	"context"
	"time"
)

//go:generate mockgen -source=types.go -destination=../mocks/cache.go -package=mocks

// CachedData is a cache entry holding the JSON encoding of a lookup result.
type CachedData struct {
	Name      string    `json:"name"`
	JSONBytes []byte    `json:"json_bytes"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry. Entries without one never expire.
func (c CachedData) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type CacheProvider interface {
	Get(ctx context.Context, name string) (CachedData, bool)
	ListAll(ctx context.Context) []string
	Set(ctx context.Context, name string, data CachedData)
	Delete(ctx context.Context, name string)
	Size(ctx context.Context) int
}
