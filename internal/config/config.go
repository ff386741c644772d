package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use --config or -c)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML, applies environment overrides and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvCAAPIEndpoint               = "SCM_GATEWAY_CA_API_ENDPOINT"
	EnvCACustomerURI               = "SCM_GATEWAY_CA_CUSTOMER_URI"
	EnvCAUsername                  = "SCM_GATEWAY_CA_USERNAME"
	EnvCAPassword                  = "SCM_GATEWAY_CA_PASSWORD"
	EnvCAClientCertificatePassword = "SCM_GATEWAY_CA_CLIENT_CERTIFICATE_PASSWORD"
	EnvRedisPassword               = "SCM_GATEWAY_REDIS_PASSWORD"
	EnvRedisUsername               = "SCM_GATEWAY_REDIS_USERNAME"
	EnvRedisSentinelUsername       = "SCM_GATEWAY_REDIS_SENTINEL_USERNAME"
	EnvRedisSentinelPassword       = "SCM_GATEWAY_REDIS_SENTINEL_PASSWORD"
	EnvStorageHost                 = "SCM_GATEWAY_STORAGE_HOST"
	EnvStoragePort                 = "SCM_GATEWAY_STORAGE_PORT"
	EnvStorageUsername             = "SCM_GATEWAY_STORAGE_USERNAME"
	EnvStoragePassword             = "SCM_GATEWAY_STORAGE_PASSWORD"
	EnvStorageDatabase             = "SCM_GATEWAY_STORAGE_DATABASE"
)

func applyEnvironmentOverrides(config *Config) {
	if endpoint := os.Getenv(EnvCAAPIEndpoint); endpoint != "" {
		config.CA.APIEndpoint = endpoint
	}

	if customerURI := os.Getenv(EnvCACustomerURI); customerURI != "" {
		config.CA.CustomerURI = customerURI
	}

	if username := os.Getenv(EnvCAUsername); username != "" {
		config.CA.Username = username
	}

	if password := os.Getenv(EnvCAPassword); password != "" {
		config.CA.Password = password
	}

	if certPassword := os.Getenv(EnvCAClientCertificatePassword); certPassword != "" {
		if config.CA.ClientCertificate == nil {
			config.CA.ClientCertificate = &ClientCertificateConfig{}
		}
		config.CA.ClientCertificate.Password = certPassword
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}

	if redisUsername := os.Getenv(EnvRedisUsername); redisUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = redisUsername
	}

	if sentinelUsername := os.Getenv(EnvRedisSentinelUsername); sentinelUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		if config.Redis.Sentinel == nil {
			config.Redis.Sentinel = &RedisSentinelConfig{}
		}
		config.Redis.Sentinel.SentinelUsername = sentinelUsername
	}

	if sentinelPassword := os.Getenv(EnvRedisSentinelPassword); sentinelPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		if config.Redis.Sentinel == nil {
			config.Redis.Sentinel = &RedisSentinelConfig{}
		}
		config.Redis.Sentinel.SentinelPassword = sentinelPassword
	}

	if host := os.Getenv(EnvStorageHost); host != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{}
		}
		config.Storage.Host = host
	}

	if portStr := os.Getenv(EnvStoragePort); portStr != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{}
		}
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Storage.Port = port
		}
	}

	if username := os.Getenv(EnvStorageUsername); username != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{}
		}
		config.Storage.Username = username
	}

	if password := os.Getenv(EnvStoragePassword); password != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{}
		}
		config.Storage.Password = password
	}

	if database := os.Getenv(EnvStorageDatabase); database != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{}
		}
		config.Storage.Database = database
	}
}

func validateConfig(config *Config) error {

	err := config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.CA.Validate()
	if err != nil {
		return err
	}

	err = config.validateProductsConfig()
	if err != nil {
		return err
	}

	err = config.validateSyncConfig()
	if err != nil {
		return err
	}

	err = config.validateCacheConfig()
	if err != nil {
		return err
	}

	if config.Cache.Type == "redis" || (config.Distributed != nil && config.Distributed.Enabled) {
		err = config.validateRedisConfig()
		if err != nil {
			return err
		}
	}

	err = config.validateDistributedConfig()
	if err != nil {
		return err
	}

	err = config.validateStorageConfig()
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = DefaultServerConfig.WriteTimeout
	}

	for i, digest := range c.Server.APITokens {
		if _, err := bcrypt.Cost([]byte(digest)); err != nil {
			return fmt.Errorf("server.api_tokens[%d] is not a bcrypt digest: %w", i, err)
		}
	}

	if c.Server.CORS != nil {
		if len(c.Server.CORS.AllowedOrigins) == 0 {
			return fmt.Errorf("server.cors.allowed_origins must not be empty when cors is configured")
		}
		if len(c.Server.CORS.AllowedMethods) == 0 {
			c.Server.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
		}
		if len(c.Server.CORS.AllowedHeaders) == 0 {
			c.Server.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
		}
		if c.Server.CORS.MaxAgeSeconds <= 0 {
			c.Server.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
		}
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	} else {
		switch c.Log.Format {
		case "text", "json":
		default:
			return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	} else {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
		}
	}

	return nil
}

// Validate fills CA defaults and checks the settings needed before any remote call.
func (c *CAConfig) Validate() error {
	if c.APIEndpoint == "" {
		c.APIEndpoint = DefaultCAConfig.APIEndpoint
	}

	if err := validateURL(c.APIEndpoint, "api_endpoint"); err != nil {
		return err
	}

	if c.AuthType == "" {
		c.AuthType = DefaultCAConfig.AuthType
	}

	switch strings.ToLower(c.AuthType) {
	case AuthTypePassword:
		c.AuthType = AuthTypePassword
		if c.IsEnabled() && c.Password == "" {
			return fmt.Errorf("ca.password is required when auth_type is password")
		}
	case AuthTypeCertificate:
		c.AuthType = AuthTypeCertificate
		if c.IsEnabled() && (c.ClientCertificate == nil || c.ClientCertificate.Path == "") {
			return fmt.Errorf("ca.client_certificate.path is required when auth_type is certificate")
		}
	default:
		return fmt.Errorf("invalid ca.auth_type: %s, options are 'password' or 'certificate'", c.AuthType)
	}

	if c.IsEnabled() {
		if c.CustomerURI == "" {
			return fmt.Errorf("ca.customer_uri is required")
		}
		if c.Username == "" {
			return fmt.Errorf("ca.username is required")
		}
	}

	if c.PickupRetries < 0 {
		return fmt.Errorf("ca.pickup_retries cannot be negative")
	} else if c.PickupRetries == 0 {
		c.PickupRetries = DefaultCAConfig.PickupRetries
	}

	if c.PickupDelay < 0 {
		return fmt.Errorf("ca.pickup_delay cannot be negative")
	} else if c.PickupDelay == 0 {
		c.PickupDelay = DefaultCAConfig.PickupDelay
	}

	if c.PickupSettle < 0 {
		return fmt.Errorf("ca.pickup_settle cannot be negative")
	} else if c.PickupSettle == 0 {
		c.PickupSettle = DefaultCAConfig.PickupSettle
	}

	c.PageSize = clampPageSize(c.PageSize)

	for i, id := range c.SyncFilterProfileIDs {
		id = strings.TrimSpace(id)
		if _, err := strconv.Atoi(id); err != nil {
			return fmt.Errorf("ca.sync_filter_profile_ids[%d] is not a profile id: %q", i, id)
		}
		c.SyncFilterProfileIDs[i] = id
	}

	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultCAConfig.RequestsPerSecond
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultCAConfig.Timeout
	}

	return nil
}

func clampPageSize(size int) int {
	if size <= 0 {
		return DefaultCAConfig.PageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func (c *Config) validateProductsConfig() error {
	for id := range c.Products {
		if _, err := strconv.Atoi(id); err != nil {
			return fmt.Errorf("products key %q is not a profile id", id)
		}
	}
	return nil
}

// Product returns the enrollment parameters for a product id, or the defaults.
func (c *Config) Product(productID string) ProductConfig {
	if p, ok := c.Products[productID]; ok {
		return p
	}
	return ProductConfig{}
}

func (c *Config) validateSyncConfig() error {
	if c.Sync.Interval == 0 {
		c.Sync.Interval = DefaultSyncConfig.Interval
	} else if c.Sync.Interval < time.Minute {
		return fmt.Errorf("sync.interval cannot be less than 1 minute")
	}

	if c.Sync.QueueCapacity <= 0 {
		c.Sync.QueueCapacity = DefaultSyncConfig.QueueCapacity
	}

	if c.Sync.OfferTimeout <= 0 {
		c.Sync.OfferTimeout = DefaultSyncConfig.OfferTimeout
	}

	if c.Sync.Enabled && (c.Storage == nil || !c.Storage.Enabled) {
		return fmt.Errorf("storage must be enabled when sync is enabled")
	}

	return nil
}

func (c *Config) validateCacheConfig() error {
	if c.Cache.Type == "" {
		c.Cache.Type = DefaultCacheConfig.Type
	}

	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheConfig.TTL
	}

	switch c.Cache.Type {
	case "memory":
		break
	case "redis":
		if c.Redis == nil {
			return fmt.Errorf("redis configuration must be enabled to use redis for the lookup cache")
		}
	default:
		return fmt.Errorf("invalid cache type: %s, must be 'memory' or 'redis'", c.Cache.Type)
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis config is nil")
	}

	if c.Redis.Address == "" && c.Redis.Sentinel == nil {
		return fmt.Errorf("redis address is required")
	}

	if c.Redis.Address != "" {
		if _, _, err := net.SplitHostPort(c.Redis.Address); err != nil {
			return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
		}
	}

	if c.Redis.CacheIndex == 0 && c.Redis.LeaderIndex == 0 {
		c.Redis.CacheIndex = DefaultRedisConfig.CacheIndex
		c.Redis.LeaderIndex = DefaultRedisConfig.LeaderIndex
	}

	if c.Redis.CacheIndex < 0 {
		return fmt.Errorf("redis cache_index must be non-negative, got %d", c.Redis.CacheIndex)
	}

	if c.Redis.LeaderIndex < 0 {
		return fmt.Errorf("redis leader_index must be non-negative, got %d", c.Redis.LeaderIndex)
	}

	if c.Redis.LeaderIndex == c.Redis.CacheIndex {
		return fmt.Errorf("redis leader_index and cache_index should be different to avoid data collision (both are %d)", c.Redis.LeaderIndex)
	}

	const maxRedisDB = 15
	if c.Redis.CacheIndex > maxRedisDB {
		return fmt.Errorf("redis cache_index %d exceeds typical maximum of %d", c.Redis.CacheIndex, maxRedisDB)
	}

	if c.Redis.LeaderIndex > maxRedisDB {
		return fmt.Errorf("redis leader_index %d exceeds typical maximum of %d", c.Redis.LeaderIndex, maxRedisDB)
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("sentinel master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required")
		}
	}
	return nil
}

func (c *Config) validateDistributedConfig() error {
	if c.Distributed == nil || !c.Distributed.Enabled {
		return nil
	}

	if c.Distributed.TTL.Seconds() <= 0 {
		c.Distributed.TTL = DefaultDistributedConfig.TTL
	} else if c.Distributed.TTL > time.Minute {
		return fmt.Errorf("distributed ttl cannot be more than 1 minute")
	}

	return nil
}

func (c *Config) validateStorageConfig() error {
	if c.Storage == nil || !c.Storage.Enabled {
		return nil
	}

	if c.Storage.Host == "" {
		return fmt.Errorf("storage.host is required when storage is enabled")
	}

	if c.Storage.Port <= 0 || c.Storage.Port > 65535 {
		return fmt.Errorf("storage.port must be between 1 and 65535, got %d", c.Storage.Port)
	}

	if c.Storage.Database == "" {
		return fmt.Errorf("storage.database is required when storage is enabled")
	}

	return nil
}
