package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/onion/logger"
)

// Stage outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the global OpenTelemetry meter provider.
// The returned provider should be shut down on exit to flush pending points.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by stages.Metrics.
type Metrics struct {
	stageTotal      metric.Int64Counter
	stageDuration   metric.Float64Histogram
	stageErrors     metric.Int64Counter
	executionActive metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	stageTotal, err := meter.Int64Counter("stage.total",
		metric.WithDescription("Total number of stage invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.total counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("stage.duration",
		metric.WithDescription("Duration of a stage including everything inside it"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.duration histogram: %w", err)
	}

	stageErrors, err := meter.Int64Counter("stage.errors",
		metric.WithDescription("Stage invocations that returned an error, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.errors counter: %w", err)
	}

	executionActive, err := meter.Int64UpDownCounter("execution.active",
		metric.WithDescription("Number of executions currently inside a stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating execution.active gauge: %w", err)
	}

	return &Metrics{
		stageTotal:      stageTotal,
		stageDuration:   stageDuration,
		stageErrors:     stageErrors,
		executionActive: executionActive,
	}, nil
}

// RecordStageStart increments the active execution count.
func (m *Metrics) RecordStageStart(ctx context.Context, stage string) {
	m.executionActive.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordStageEnd decrements active executions and records the completed call.
func (m *Metrics) RecordStageEnd(ctx context.Context, stage, status string, duration time.Duration) {
	stageAttr := attribute.String("stage", stage)
	m.executionActive.Add(ctx, -1, metric.WithAttributes(stageAttr))
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(stageAttr, attribute.String("status", status)))
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(stageAttr))
}

// RecordStageError records a failed stage call by error code.
func (m *Metrics) RecordStageError(ctx context.Context, stage, code string) {
	m.stageErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("code", code),
	))
}
