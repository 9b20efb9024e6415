// Package logger provides structured logging for onion tools and stages
// using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers, and picks up the execution ID that stages.ExecutionID places in the
// context.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("chain")
//	log.WithContext(ctx).Info("stage done", logger.DurationFields("trim", d))
package logger
