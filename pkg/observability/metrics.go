package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Training run outcomes recorded on training_runs_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes an OpenTelemetry MeterProvider exporting to a
// dedicated Prometheus registry. Returns the provider and an HTTP handler
// for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}

// Instruments are the service's application metrics. A nil *Instruments
// records nothing.
type Instruments struct {
	predictions        metric.Int64Counter
	predictionDuration metric.Float64Histogram
	trainingRuns       metric.Int64Counter
}

// NewInstruments creates the instruments on meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	predictions, err := meter.Int64Counter("predictions_total",
		metric.WithDescription("Number of scored passengers by verdict."))
	if err != nil {
		return nil, fmt.Errorf("observability: predictions_total: %w", err)
	}

	duration, err := meter.Float64Histogram("prediction_duration_seconds",
		metric.WithDescription("Time spent encoding and scoring one passenger."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("observability: prediction_duration_seconds: %w", err)
	}

	runs, err := meter.Int64Counter("training_runs_total",
		metric.WithDescription("Number of training runs by outcome."))
	if err != nil {
		return nil, fmt.Errorf("observability: training_runs_total: %w", err)
	}

	return &Instruments{
		predictions:        predictions,
		predictionDuration: duration,
		trainingRuns:       runs,
	}, nil
}

// RecordPrediction counts one prediction and its latency.
func (i *Instruments) RecordPrediction(ctx context.Context, verdict string, elapsed time.Duration) {
	if i == nil {
		return
	}
	i.predictions.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", verdict)))
	i.predictionDuration.Record(ctx, elapsed.Seconds())
}

// RecordTrainingRun counts one training run.
func (i *Instruments) RecordTrainingRun(ctx context.Context, outcome string) {
	if i == nil {
		return
	}
	i.trainingRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
