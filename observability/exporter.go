package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

var errNilMetricsWriter = errors.New("[observability] nil metrics writer")

// ShutdownFunc flushes the pending metrics and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

// NewConsoleMetricsExporter installs the global meter provider which
// pushes the metrics as JSON into w periodically. The last collection
// is pushed on shutdown.
// Serves for test/dev environment.
func NewConsoleMetricsExporter(w io.Writer, interval time.Duration, opts ...stdoutmetric.Option) (ShutdownFunc, error) {
	if w == nil {
		return nil, errNilMetricsWriter
	}
	if interval <= 0 {
		interval = time.Minute
	}
	opts = append([]stdoutmetric.Option{stdoutmetric.WithWriter(w)}, opts...)
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(interval),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// PrometheusMetrics is the pull based exporter. The metrics are gathered
// from its own registry instead of the prometheus default one.
type PrometheusMetrics struct {
	registry *promclient.Registry
	mp       *metric.MeterProvider
}

func (pm *PrometheusMetrics) Shutdown(ctx context.Context) error {
	return pm.mp.Shutdown(ctx)
}

// WriteTo dumps the current metrics in the prometheus text format.
func (pm *PrometheusMetrics) WriteTo(w io.Writer) error {
	if w == nil {
		return errNilMetricsWriter
	}
	families, err := pm.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err = enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// NewPrometheusMetricsExporter installs the global meter provider.
// Serves for the product environment, fetch stats metrics by HTTP or dump
// them on exit.
func NewPrometheusMetricsExporter() (*PrometheusMetrics, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return &PrometheusMetrics{
		registry: registry,
		mp:       mp,
	}, nil
}
