package main

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/kbukum/onion/internal/textstage"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/stages"
)

const chainName = "chain"

// chainDeps are the collaborators buildChain wires in. tel and store are nil
// when telemetry or caching is off.
type chainDeps struct {
	registry *textstage.Registry
	log      *logger.Logger
	tel      *telemetry
	store    stages.CacheStore[string]
	cacheTTL time.Duration
}

// buildChain composes the per-input chain, outermost first: execution id,
// tracing and metrics when telemetry is on, logging, the time limit, the
// result cache, the resilience policies, then the configured text stages.
func buildChain(cfg *ChainConfig, deps chainDeps) (*pipeline.Builder[string, string], error) {
	text, err := deps.registry.Build(cfg.Stages)
	if err != nil {
		return nil, err
	}

	b := pipeline.NewBuilder[string, string]()
	b.AddStage(stages.ExecutionID[string, string]())
	if deps.tel != nil {
		b.AddStage(stages.Tracing[string, string](chainName))
		b.AddStage(stages.Metrics[string, string](deps.tel.metrics, chainName))
	}
	b.AddStage(stages.Logging[string, string](deps.log, chainName))
	if cfg.Timeout > 0 {
		b.AddStage(stages.Timeout[string, string](cfg.Timeout))
	}
	if deps.store != nil {
		b.AddStage(stages.Cache[string, string](deps.store, cacheKey(cfg.Stages), deps.cacheTTL, deps.log))
	}
	b.AddStage(stages.Resilient[string, string](cfg.Resilience)...)
	b.AddStage(text...)
	return b, nil
}

// cacheKey scopes keys to the stage list so a changed chain never reads
// results cached by a different one.
func cacheKey(specs []string) func(string) string {
	sum := sha256.Sum256([]byte(strings.Join(specs, "\x1f")))
	chain := hex.EncodeToString(sum[:6])
	return func(in string) string {
		sum := sha256.Sum256([]byte(in))
		return chain + ":" + hex.EncodeToString(sum[:])
	}
}
