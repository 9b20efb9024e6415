// Package stages provides ready-made pipeline stages for the concerns most
// chains share: logging, tracing, metrics, execution IDs, timeouts,
// resilience, result caching, and fan-out.
//
// Every constructor returns a pipeline.Stage, so the result can be passed to
// Pipeline.Through as well as Builder.AddStage:
//
//	b := pipeline.NewBuilder[string, string](
//	    pipeline.WithStages(
//	        stages.ExecutionID[string, string](),
//	        stages.Logging[string, string](log, "normalize"),
//	        stages.Timeout[string, string](time.Second),
//	    ),
//	)
//
// Stages listed first are outermost: they see the input first and the result
// last.
package stages
