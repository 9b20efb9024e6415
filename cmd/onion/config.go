package main

import (
	"time"

	"github.com/kbukum/onion/cache"
	"github.com/kbukum/onion/config"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/resilience"
	"github.com/kbukum/onion/server"
	"github.com/kbukum/onion/stages"
	"github.com/kbukum/onion/version"
)

const serviceName = "onion"

// AppConfig is the full configuration of the onion tool.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Chain     ChainConfig     `yaml:"chain" mapstructure:"chain"`
	Cache     cache.Config    `yaml:"cache" mapstructure:"cache"`
	Server    server.Config   `yaml:"server" mapstructure:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// ChainConfig describes the stage chain each input is sent through.
type ChainConfig struct {
	// Stages are textstage specs, outermost first.
	Stages []string `yaml:"stages" mapstructure:"stages" validate:"required,min=1,dive,required"`
	// Workers is how many inputs are processed at once.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=256"`
	// Timeout bounds a single execution. 0 disables it.
	Timeout    time.Duration           `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Resilience stages.ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
}

// TelemetryConfig enables OTLP export of stage spans and metrics.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the fraction of executions traced. 0 means 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Chain.Workers == 0 {
		c.Chain.Workers = 4
	}
	c.Cache.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

// Validate checks the base service fields and the cache and server sections.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// loadConfig reads configuration from the resolved config and env files,
// then applies command-line overrides.
func loadConfig(opts options) (*AppConfig, error) {
	var loaderOpts []config.LoaderOption
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}

	if len(opts.stages) > 0 {
		cfg.Chain.Stages = opts.stages
	}
	if opts.workers > 0 {
		cfg.Chain.Workers = opts.workers
	}
	if opts.timeout > 0 {
		cfg.Chain.Timeout = opts.timeout
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	return cfg, nil
}

// observeResilience routes state changes of the configured primitives to log.
func observeResilience(rc *stages.ResilienceConfig, log *logger.Logger) {
	if cb := rc.CircuitBreaker; cb != nil {
		if cb.Name == "" {
			cb.Name = "chain"
		}
		cb.OnStateChange = func(name string, from, to resilience.State) {
			log.Warn("circuit breaker state changed", logger.Fields(
				"breaker", name, "from", from.String(), "to", to.String()))
		}
	}
	if bh := rc.Bulkhead; bh != nil {
		if bh.Name == "" {
			bh.Name = "chain"
		}
		bh.OnReject = func(name string, err error) {
			log.Warn("bulkhead rejected execution", logger.MergeWithError(logger.Fields("bulkhead", name), err))
		}
	}
	if r := rc.Retry; r != nil {
		r.OnRetry = func(attempt int, err error, backoff time.Duration) {
			log.Debug("retrying execution", logger.MergeWithError(logger.Fields(
				logger.FieldAttempt, attempt, "backoff_ms", backoff.Milliseconds()), err))
		}
	}
}
