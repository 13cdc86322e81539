// Package observability provides OpenTelemetry tracing and metrics
// integration for the rendering service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("yumlsvgd"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "diagram.render")
//	defer span.End()
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("yumlsvgd")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("yumlsvgd"))
//	metrics.RecordRequestEnd(ctx, "yumlsvgd", "POST /v1/render", "ok", duration)
//
// Health checks:
//
//	health := observability.NewServiceHealth("yumlsvgd", "1.0.0")
//	health.AddComponent(observability.Health{Name: "layout-engine", Status: observability.HealthStatusUp})
package observability
