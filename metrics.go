package subsetsum

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    solveCounter    prometheus.Counter
//	    solveHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSolve(results int, duration time.Duration, err error) {
//	    p.solveCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordTableBuild is called after each reachability table construction.
	// bytes is the table size, err is nil if successful.
	RecordTableBuild(bytes int64, duration time.Duration, err error)

	// RecordPartition is called after each started partition finishes.
	// subsets is the number of subsets it produced.
	RecordPartition(subsets int, duration time.Duration, err error)

	// RecordSolve is called after each Solve.
	// results is the number of subsets returned, err is nil if successful.
	RecordSolve(results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTableBuild(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordPartition(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordSolve(int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TableBuildCount  atomic.Int64
	TableBuildErrors atomic.Int64
	TableBytes       atomic.Int64
	PartitionCount   atomic.Int64
	PartitionErrors  atomic.Int64
	PartitionSubsets atomic.Int64
	SolveCount       atomic.Int64
	SolveErrors      atomic.Int64
	SolveResults     atomic.Int64
	SolveTotalNanos  atomic.Int64
}

// RecordTableBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTableBuild(bytes int64, duration time.Duration, err error) {
	b.TableBuildCount.Add(1)
	if err != nil {
		b.TableBuildErrors.Add(1)
		return
	}
	b.TableBytes.Add(bytes)
}

// RecordPartition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPartition(subsets int, duration time.Duration, err error) {
	b.PartitionCount.Add(1)
	b.PartitionSubsets.Add(int64(subsets))
	if err != nil {
		b.PartitionErrors.Add(1)
	}
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(results int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveResults.Add(int64(results))
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TableBuildCount:  b.TableBuildCount.Load(),
		TableBuildErrors: b.TableBuildErrors.Load(),
		TableBytes:       b.TableBytes.Load(),
		PartitionCount:   b.PartitionCount.Load(),
		PartitionErrors:  b.PartitionErrors.Load(),
		PartitionSubsets: b.PartitionSubsets.Load(),
		SolveCount:       b.SolveCount.Load(),
		SolveErrors:      b.SolveErrors.Load(),
		SolveResults:     b.SolveResults.Load(),
		SolveAvgNanos:    b.getAvgSolveNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TableBuildCount  int64
	TableBuildErrors int64
	TableBytes       int64
	PartitionCount   int64
	PartitionErrors  int64
	PartitionSubsets int64
	SolveCount       int64
	SolveErrors      int64
	SolveResults     int64
	SolveAvgNanos    int64
}
