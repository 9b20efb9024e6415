package cache

import (
	"fmt"
	"time"
)

// Config holds Redis connection and caching settings.
type Config struct {
	// Enabled controls whether results are cached.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Addr is the Redis server address (host:port).
	Addr     string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db" validate:"gte=0"`

	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size" validate:"gte=0"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// KeyPrefix namespaces every key written by TypedStore.
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
	// TTL is how long a cached result lives. 0 keeps it until evicted.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "onion"
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("cache.addr is required")
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("cache.pool_size must be > 0")
	}
	return nil
}
