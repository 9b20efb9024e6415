// Package observability provides OpenTelemetry tracing and metrics for
// pipeline stages.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("onion")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "onion.trim")
//	defer span.End()
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("onion")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("onion"))
//	metrics.RecordStageEnd(ctx, "trim", observability.StatusOK, duration)
package observability
