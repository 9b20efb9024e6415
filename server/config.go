package server

import (
	"fmt"
	"time"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	// MaxBodyBytes limits request bodies. 0 disables the limit.
	MaxBodyBytes int64      `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gte=0"`
	Auth         AuthConfig `yaml:"auth" mapstructure:"auth"`
}

// AuthConfig enables bearer authentication when Secret is set. Tokens must be
// HS256 JWTs signed with Secret.
type AuthConfig struct {
	Secret   string `yaml:"secret" mapstructure:"secret"`
	Issuer   string `yaml:"issuer" mapstructure:"issuer"`
	Audience string `yaml:"audience" mapstructure:"audience"`
}

// Enabled reports whether requests must carry a token.
func (a AuthConfig) Enabled() bool { return a.Secret != "" }

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 10 << 20
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.Auth.Enabled() && len(c.Auth.Secret) < 32 {
		return fmt.Errorf("server.auth.secret must be at least 32 bytes")
	}
	return nil
}
