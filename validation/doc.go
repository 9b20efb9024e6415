// Package validation checks configuration structs and hand-written inputs.
//
// Struct tag validation uses go-playground/validator and reports failures as
// an INVALID_CONFIG error keyed by config path:
//
//	type ChainConfig struct {
//	    Stages  []string      `mapstructure:"stages" validate:"required,min=1"`
//	    Workers int           `mapstructure:"workers" validate:"gte=1,lte=64"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects errors and reports INVALID_INPUT:
//
//	v := validation.New()
//	v.Required("prefix", arg)
//	if err := v.Validate(); err != nil { ... }
package validation
