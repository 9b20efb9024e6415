// Package bootstrap runs onion tools: it validates configuration, sets up
// logging, and wraps a finite task in start and stop hooks with signal-aware
// cancellation.
package bootstrap
