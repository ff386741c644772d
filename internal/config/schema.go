package config

import (
	"time"
)

type Config struct {
	Server      ServerConfig             `yaml:"server"`
	Log         LogConfig                `yaml:"log"`
	CA          CAConfig                 `yaml:"ca"`
	Products    map[string]ProductConfig `yaml:"products"`
	Sync        SyncConfig               `yaml:"sync"`
	Storage     *StorageConfig           `yaml:"storage"`
	Cache       CacheConfig              `yaml:"cache"`
	Redis       *RedisConfig             `yaml:"redis"`
	Distributed *DistributedConfig       `yaml:"distributed"`
}

type ServerConfig struct {
	Port  int                `yaml:"port"`
	Debug *ServerDebugConfig `yaml:"debug"`
	// APITokens are bcrypt digests of the bearer tokens accepted by /api. Empty disables authentication.
	APITokens    []string      `yaml:"api_tokens"`
	CORS         *CORSConfig   `yaml:"cors"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

var DefaultServerConfig = ServerConfig{
	Port:         8080,
	WriteTimeout: 5 * time.Minute,
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAgeSeconds  int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"Authorization", "Content-Type"},
	MaxAgeSeconds:  300,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

const (
	AuthTypePassword    = "password"
	AuthTypeCertificate = "certificate"
)

// MaxPageSize is the largest page the SCM list endpoint accepts.
const MaxPageSize = 200

type CAConfig struct {
	APIEndpoint                string                   `yaml:"api_endpoint"`
	AuthType                   string                   `yaml:"auth_type"`
	CustomerURI                string                   `yaml:"customer_uri"`
	Username                   string                   `yaml:"username"`
	Password                   string                   `yaml:"password"`
	ClientCertificate          *ClientCertificateConfig `yaml:"client_certificate"`
	PickupRetries              int                      `yaml:"pickup_retries"`
	PickupDelay                time.Duration            `yaml:"pickup_delay"`
	PickupSettle               time.Duration            `yaml:"pickup_settle"`
	PageSize                   int                      `yaml:"page_size"`
	ExternalRequestorFieldName string                   `yaml:"external_requestor_field_name"`
	SyncFilterProfileIDs       []string                 `yaml:"sync_filter_profile_ids"`
	ForceCompleteSync          bool                     `yaml:"force_complete_sync"`
	Enabled                    *bool                    `yaml:"enabled"`
	RequestsPerSecond          float64                  `yaml:"requests_per_second"`
	Timeout                    time.Duration            `yaml:"timeout"`
}

// IsEnabled reports whether gateway operations are allowed. Unset means enabled.
func (c CAConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

var DefaultCAConfig = CAConfig{
	APIEndpoint:       "https://hard.cert-manager.com/",
	AuthType:          AuthTypePassword,
	PickupRetries:     5,
	PickupDelay:       10 * time.Second,
	PickupSettle:      5 * time.Second,
	PageSize:          25,
	RequestsPerSecond: 10,
	Timeout:           60 * time.Second,
}

type ClientCertificateConfig struct {
	Path     string `yaml:"path"`
	Password string `yaml:"password"`
}

// ProductConfig holds the per product (SSL profile) enrollment parameters.
type ProductConfig struct {
	MultiDomain  *bool  `yaml:"multi_domain"`
	Organization string `yaml:"organization"`
	Department   string `yaml:"department"`
}

// IsMultiDomain reports the multi domain flag. Unset means multi domain.
func (p ProductConfig) IsMultiDomain() bool {
	return p.MultiDomain == nil || *p.MultiDomain
}

type SyncConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Interval      time.Duration `yaml:"interval"`
	QueueCapacity int           `yaml:"queue_capacity"`
	OfferTimeout  time.Duration `yaml:"offer_timeout"`
}

var DefaultSyncConfig = SyncConfig{
	Interval:      time.Hour,
	QueueCapacity: 100,
	OfferTimeout:  50 * time.Millisecond,
}

type StorageConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type CacheConfig struct {
	Type string        `yaml:"type"` //  "memory" or "redis"
	TTL  time.Duration `yaml:"ttl"`
}

var DefaultCacheConfig = CacheConfig{
	Type: "memory",
	TTL:  10 * time.Minute,
}

type RedisConfig struct {
	Address     string               `yaml:"address"`
	Username    string               `yaml:"username"`
	Password    string               `yaml:"password"`
	Sentinel    *RedisSentinelConfig `yaml:"sentinel"`
	CacheIndex  int                  `yaml:"cache_index"`
	LeaderIndex int                  `yaml:"leader_index"`
}

var DefaultRedisConfig = RedisConfig{
	CacheIndex:  1,
	LeaderIndex: 2,
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}

type DistributedConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

var DefaultDistributedConfig = DistributedConfig{
	Enabled: false,
	TTL:     30 * time.Second,
}
