package nslscan

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	workers          int
	geneticMap       GeneticMap
	logger           *Logger
	metricsCollector MetricsCollector
	tracerProvider   trace.TracerProvider
}

func defaultOptions() options {
	return options{
		workers:          1,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		tracerProvider:   otel.GetTracerProvider(),
	}
}

// Option configures a Scanner.
type Option func(*options)

// WithWorkers sets the number of goroutines used to compute per-site
// statistics. The default of 1 is fully sequential.
//
// Output order never depends on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGeneticMap sets the physical-to-genetic position map used for the iHS
// analog. Pass nil (or an empty map) to measure physical distance.
//
// Every boundary position reached by a valid comparison must be present in
// the map, otherwise the call fails with *ErrMissingGeneticMapEntry.
func WithGeneticMap(gmap GeneticMap) Option {
	return func(o *options) {
		o.geneticMap = gmap
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := nslscan.NewJSONLogger(slog.LevelDebug)
//	s := nslscan.New(nslscan.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for scan
// spans. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		o.tracerProvider = tp
	}
}
