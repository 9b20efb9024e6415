package bootstrap

import (
	"github.com/kbukum/onion/config"
)

// Config is the constraint for application configuration types.
// Structs embedding config.ServiceConfig satisfy it through promoted methods
// and may override ApplyDefaults and Validate.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
