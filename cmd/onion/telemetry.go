package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/onion/bootstrap"
	"github.com/kbukum/onion/observability"
)

const meterName = "github.com/kbukum/onion/cmd/onion"

type telemetry struct {
	metrics *observability.Metrics
}

// startTelemetry installs the OTLP tracer and meter providers and registers
// their shutdown, which flushes pending spans and points, as stop hooks.
func startTelemetry(ctx context.Context, cfg *AppConfig, app *bootstrap.App[*AppConfig]) (*telemetry, error) {
	tc := cfg.Telemetry
	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       tc.Endpoint,
		Insecure:       tc.Insecure,
		SampleRate:     tc.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	app.OnStop(tp.Shutdown)

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       tc.Endpoint,
		Insecure:       tc.Insecure,
		Interval:       15 * time.Second,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("meter: %w", err)
	}
	app.OnStop(mp.Shutdown)

	m, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return &telemetry{metrics: m}, nil
}
