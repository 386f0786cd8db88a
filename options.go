package mmapvec

import (
	"log/slog"
)

// DefaultGrowthFactor doubles the capacity on every growth step.
const DefaultGrowthFactor = 2

type options struct {
	provider         SegmentProvider
	growthFactor     int
	minCapacity      int
	initialCapacity  int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures vec constructor behavior.
type Option func(*options)

// WithProvider configures the segment provider backing all storage
// operations. If nil is passed (or the option is omitted), a FileProvider
// storing under the default directory is used.
func WithProvider(p SegmentProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithGrowthFactor configures the multiplier applied to the capacity on
// each growth step. Factors below 2 are treated as DefaultGrowthFactor;
// a factor of 1 could never make room.
func WithGrowthFactor(factor int) Option {
	return func(o *options) {
		o.growthFactor = factor
	}
}

// WithMinCapacity configures the smallest capacity (in elements) a growth
// step provisions. The default is one OS page worth of elements.
//
// Raising it avoids churning through tiny segments when the rough final
// size is known ahead of time. A full page is the natural floor since the
// kernel maps whole pages anyway.
func WithMinCapacity(n int) Option {
	return func(o *options) {
		o.minCapacity = n
	}
}

// WithInitialCapacity provisions capacity for n elements at construction
// instead of on the first push.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mmapvec.BasicMetricsCollector{}
//	v, _ := mmapvec.New[int64](mmapvec.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
//	fmt.Printf("Grows: %d, Avg latency: %dns\n", stats.GrowCount, stats.GrowAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mmapvec.NewJSONLogger(slog.LevelInfo)
//	v, _ := mmapvec.New[int64](mmapvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

func applyOptions(optFns []Option) options {
	o := options{
		growthFactor:     DefaultGrowthFactor,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.growthFactor < 2 {
		o.growthFactor = DefaultGrowthFactor
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
