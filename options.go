package meshgo

type options struct {
	logger        *Logger
	metrics       MetricsCollector
	smallVolume   float64
	vertexEpsilon float64
}

func defaultOptions() options {
	return options{
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
		smallVolume:   1e-12,
		vertexEpsilon: 1e-6,
	}
}

// Option configures Mesh construction behavior.
type Option func(*options)

// WithLogger configures the logger used for cache and I/O diagnostics.
//
// If nil is passed, the no-op logger is used.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring queries.
// Pass nil to disable metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

// WithSmallVolume configures the threshold under which the mesh volume is
// considered numerically zero. Default is 1e-12.
func WithSmallVolume(threshold float64) Option {
	return func(o *options) {
		o.smallVolume = threshold
	}
}

// WithVertexEpsilon configures the spacing tolerance used by the 1D
// regularity check. Default is 1e-6.
func WithVertexEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.vertexEpsilon = epsilon
	}
}
