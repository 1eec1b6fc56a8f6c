package observability

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const AppStatsName = "xbst/app"

// StartAppStats observes the goroutines and GOMAXPROCS of the process,
// together with the go runtime metrics (gc, heap). It has to be called
// after the meter provider is installed.
func StartAppStats(name string) error {
	if name = strings.TrimSpace(name); len(name) <= 0 {
		name = "default"
	}
	meter := otel.Meter(
		AppStatsName+"/"+name,
		metric.WithInstrumentationVersion(otelruntime.Version()),
	)
	_ = lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
		"app.core.goroutines",
		metric.WithDescription(`The application goroutines' info.`),
		metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
			ob.Observe(int64(runtime.NumGoroutine()))
			return nil
		}),
	))
	_ = lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
		"app.core.procs",
		metric.WithDescription(`The application GOMAXPROCS, tuned by automaxprocs.`),
		metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
			ob.Observe(int64(runtime.GOMAXPROCS(0)))
			return nil
		}),
	))
	return otelruntime.Start(
		otelruntime.WithMeterProvider(otel.GetMeterProvider()),
		otelruntime.WithMinimumReadMemStatsInterval(time.Second),
	)
}
