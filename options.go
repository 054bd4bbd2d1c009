package subsetsum

import (
	"runtime"
)

const (
	// DefaultMaxWeights is the default limit on the number of input weights.
	DefaultMaxWeights = 4096

	// DefaultMaxTarget is the default ceiling on the target value.
	// The reachability table holds (n+1)·(T+1) bits.
	DefaultMaxTarget = 1_000_000
)

type options struct {
	maxWeights             int
	maxTarget              int64
	parallelism            int
	partitionDepth         int
	cancelOnBudgetExceeded bool
	memoryLimit            int64
	maxProjectedResults    uint64
	maxResults             int
	maxSubsetLength        int
	allowPartial           bool
	forceTerminate         bool
	verify                 bool
	metricsCollector       MetricsCollector
	logger                 *Logger
}

// Option configures a Solver.
type Option func(*options)

func defaultOptions() options {
	return options{
		maxWeights:       DefaultMaxWeights,
		maxTarget:        DefaultMaxTarget,
		parallelism:      runtime.GOMAXPROCS(0),
		partitionDepth:   -1,
		allowPartial:     true,
		verify:           true,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

func applyOptions(optFns []Option) options {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// WithMaxWeights limits the number of input weights.
// If n <= 0, the limit is disabled.
func WithMaxWeights(n int) Option {
	return func(o *options) {
		o.maxWeights = n
	}
}

// WithMaxTarget sets the ceiling on the target value.
// Larger targets fail with *TargetTooLargeError before any table is allocated.
// If t <= 0, only the platform limit applies.
func WithMaxTarget(t int64) Option {
	return func(o *options) {
		o.maxTarget = t
	}
}

// WithParallelism sets the number of partitions enumerated concurrently.
// If n <= 0, runtime.GOMAXPROCS(0) is used. n == 1 enumerates serially.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithPartitionDepth sets the number of top-level include/exclude decisions
// the search space is split on, producing up to 2^k partitions.
//
// If k < 0 (the default), the depth is derived from the parallelism so that
// each worker gets several partitions:
//
//	parallelism 1 -> k = 0 (single partition)
//	parallelism 4 -> k = 4
//	parallelism 8 -> k = 5
//
// The depth is clamped to the number of weights and to 16.
func WithPartitionDepth(k int) Option {
	return func(o *options) {
		o.partitionDepth = k
	}
}

// WithCancelOnBudgetExceeded makes exhaustion of the memory limit during
// enumeration abort the whole operation with *ResourceBudgetExceededError.
// Otherwise only the partition that hit the limit fails.
func WithCancelOnBudgetExceeded(cancel bool) Option {
	return func(o *options) {
		o.cancelOnBudgetExceeded = cancel
	}
}

// WithMemoryLimit bounds the bytes held by the reachability table, the
// solution count buffer and the emitted subsets of one operation. Table and
// count buffer are checked before they are allocated. If bytes <= 0, memory
// is tracked but not limited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxProjectedResults rejects inputs whose total number of solutions
// exceeds n, before the table is built. The count is computed exactly
// (saturating) in O(n·T) time and O(T) memory. If n == 0, no check runs.
func WithMaxProjectedResults(n uint64) Option {
	return func(o *options) {
		o.maxProjectedResults = n
	}
}

// WithMaxResults stops enumeration once n subsets were collected.
// The returned Results report Truncated. Which subsets are kept depends on
// scheduling unless the parallelism is 1. If n <= 0, enumeration is complete.
func WithMaxResults(n int) Option {
	return func(o *options) {
		o.maxResults = n
	}
}

// WithMaxSubsetLength only returns subsets of at most n indices.
// The cap prunes the backtracking search early. If n <= 0, there is no cap.
func WithMaxSubsetLength(n int) Option {
	return func(o *options) {
		o.maxSubsetLength = n
	}
}

// WithAllowPartial controls whether results of successful partitions are
// returned alongside a *PartitionFailureError (the default) or discarded.
func WithAllowPartial(allow bool) Option {
	return func(o *options) {
		o.allowPartial = allow
	}
}

// WithForceTerminate stops in-flight partitions when the context is
// cancelled. Each stopped partition is reported as failed. By default
// in-flight partitions run to completion and only unstarted ones are skipped.
func WithForceTerminate(force bool) Option {
	return func(o *options) {
		o.forceTerminate = force
	}
}

// WithVerify toggles re-checking every emitted subset against the weights.
// Enabled by default.
func WithVerify(verify bool) Option {
	return func(o *options) {
		o.verify = verify
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
