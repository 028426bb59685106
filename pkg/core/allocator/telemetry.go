package allocator

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for roster generation.
// Both are no-ops unless the host application installs providers.
var (
	tracer = otel.Tracer("shifteasy.allocator")
	meter  = otel.Meter("shifteasy.allocator")
)

var (
	generateLatency    metric.Float64Histogram
	generateTotal      metric.Int64Counter
	hardViolationsHist metric.Int64Histogram
	swapRoundsHist     metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		generateLatency, err = meter.Float64Histogram(
			"roster_generate_duration_seconds",
			metric.WithDescription("Duration of roster generation runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		generateTotal, err = meter.Int64Counter(
			"roster_generate_total",
			metric.WithDescription("Total number of roster generation runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		hardViolationsHist, err = meter.Int64Histogram(
			"roster_hard_violations",
			metric.WithDescription("Hard constraint violations in generated rosters"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		swapRoundsHist, err = meter.Int64Histogram(
			"roster_swap_rounds",
			metric.WithDescription("Swap optimisation rounds per generation run"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startGenerateSpan creates a span for a generation run
func startGenerateSpan(ctx context.Context, cfg GenerationConfig) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ScheduleGenerator.Generate",
		trace.WithAttributes(
			attribute.String("roster.start", cfg.DateRange.Start),
			attribute.String("roster.end", cfg.DateRange.End),
			attribute.Int("roster.staff", len(cfg.Staff)),
			attribute.Bool("roster.optimize", cfg.Optimization.Enabled),
		),
	)
}

// setGenerateSpanResult sets the result attributes on a generation span
func setGenerateSpanResult(span trace.Span, result GenerationResult) {
	span.SetAttributes(
		attribute.Int("roster.assignments", len(result.Assignments)),
		attribute.Int("roster.hard_violations", result.Analysis.HardViolations),
		attribute.Float64("roster.score", result.Analysis.Score),
		attribute.Bool("roster.success", result.Success),
	)
}

// recordGenerateMetrics records metrics for a generation run
func recordGenerateMetrics(ctx context.Context, duration time.Duration, result GenerationResult) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", result.Success),
	)

	generateLatency.Record(ctx, duration.Seconds(), attrs)
	generateTotal.Add(ctx, 1, attrs)
	hardViolationsHist.Record(ctx, int64(result.Analysis.HardViolations))
	swapRoundsHist.Record(ctx, int64(result.Analysis.Iterations))
}
