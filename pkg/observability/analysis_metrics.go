package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "deepxcheck"

// AnalysisMetrics bundles the instruments recorded around profile scoring.
// A nil *AnalysisMetrics is a valid no-op, so callers can run without a
// metrics pipeline.
type AnalysisMetrics struct {
	analyses metric.Int64Counter
	duration metric.Float64Histogram
}

// NewAnalysisMetrics registers the scoring instruments on the global meter
// provider. Call InitMetrics first so the instruments export somewhere.
func NewAnalysisMetrics() (*AnalysisMetrics, error) {
	meter := otel.Meter(meterName)

	analyses, err := meter.Int64Counter(
		"deepxcheck_analyses_total",
		metric.WithDescription("Completed profile analyses by mode and risk level."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create analyses counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"deepxcheck_scoring_duration_seconds",
		metric.WithDescription("Wall time spent scoring a single profile."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create scoring duration histogram: %w", err)
	}

	return &AnalysisMetrics{
		analyses: analyses,
		duration: duration,
	}, nil
}

// RecordAnalysis counts one finished analysis and its scoring duration.
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, mode, riskLevel string, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("risk_level", riskLevel),
	)
	m.analyses.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
