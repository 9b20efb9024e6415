// Package config loads tool configuration from a YAML file, a .env file, and
// prefixed environment variables using Viper.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("onion", &cfg, config.WithConfigFile(path))
//
// Environment variables override file values. They carry the tool's prefix
// and use underscores for nesting, e.g. ONION_LOGGING_LEVEL=debug.
package config
