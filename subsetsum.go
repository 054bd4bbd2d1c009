package subsetsum

import (
	"context"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/subsetsum/internal/backtrack"
	"github.com/hupe1980/subsetsum/internal/dispatch"
	"github.com/hupe1980/subsetsum/internal/resource"
	"github.com/hupe1980/subsetsum/internal/table"
	"github.com/hupe1980/subsetsum/weights"
)

// Solver enumerates subset-sum solutions.
//
// A Solver holds configuration only and is safe for concurrent use.
type Solver struct {
	opts options
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	return &Solver{opts: applyOptions(opts)}
}

// Solve returns every subset of weights whose values sum to target.
//
// Weights and target are integer-scale units and must be finite, integral
// and non-negative. An unreachable target yields an empty collection.
func Solve(ctx context.Context, weights []float64, target float64, opts ...Option) (*Results, error) {
	return New(opts...).Solve(ctx, weights, target)
}

// Solve returns every subset of ws whose values sum to target.
//
// When some partitions fail, the returned error is a *PartitionFailureError.
// If partial results are allowed (the default) the successful partitions are
// returned as well.
func (s *Solver) Solve(ctx context.Context, ws []float64, target float64) (*Results, error) {
	set, err := weights.Normalize(ws, target, s.opts.maxWeights)
	if err != nil {
		return nil, s.fail(ctx, time.Now(), translateError(err))
	}
	return s.solve(ctx, set)
}

// SolveInts is Solve for integer weights.
func (s *Solver) SolveInts(ctx context.Context, ws []int64, target int64) (*Results, error) {
	set, err := weights.NormalizeInts(ws, target, s.opts.maxWeights)
	if err != nil {
		return nil, s.fail(ctx, time.Now(), translateError(err))
	}
	return s.solve(ctx, set)
}

// Stream lazily enumerates subsets in the same order Solve returns them,
// on the calling goroutine. Breaking out of the loop stops enumeration.
// A non-nil error is yielded at most once, as the final element.
func (s *Solver) Stream(ctx context.Context, ws []int64, target int64) iter.Seq2[Subset, error] {
	return func(yield func(Subset, error) bool) {
		set, err := weights.NormalizeInts(ws, target, s.opts.maxWeights)
		if err != nil {
			yield(nil, translateError(err))
			return
		}
		rc := s.controller()
		t, err := s.buildTable(ctx, rc, set)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rc.ReleaseMemory(t.SizeBytes())

		for sub, err := range s.backtracker(t).All(ctx) {
			if !yield(sub, translateError(err)) {
				return
			}
		}
	}
}

// Exists reports whether any subset of ws sums to target.
func (s *Solver) Exists(ctx context.Context, ws []int64, target int64) (bool, error) {
	set, err := weights.NormalizeInts(ws, target, s.opts.maxWeights)
	if err != nil {
		return false, translateError(err)
	}
	rc := s.controller()
	t, err := s.buildTable(ctx, rc, set)
	if err != nil {
		return false, err
	}
	defer rc.ReleaseMemory(t.SizeBytes())
	return t.Feasible(), nil
}

// Count returns the number of subsets of ws that sum to target, saturating
// at math.MaxUint64. It does not enumerate and ignores the subset length cap.
func (s *Solver) Count(ctx context.Context, ws []int64, target int64) (uint64, error) {
	set, err := weights.NormalizeInts(ws, target, s.opts.maxWeights)
	if err != nil {
		return 0, translateError(err)
	}
	return s.countSolutions(ctx, s.controller(), set)
}

func (s *Solver) solve(ctx context.Context, set *weights.Set) (*Results, error) {
	start := time.Now()
	logger := s.opts.logger.WithCount(set.Len()).WithTarget(set.Target())

	rc := s.controller()
	if s.opts.maxProjectedResults > 0 {
		if err := s.checkProjected(ctx, rc, set); err != nil {
			return nil, s.fail(ctx, start, err)
		}
	}

	t, err := s.buildTable(ctx, rc, set)
	if err != nil {
		return nil, s.fail(ctx, start, err)
	}

	d := dispatch.New(dispatch.Config{
		Parallelism:            s.opts.parallelism,
		PartitionDepth:         s.opts.partitionDepth,
		MaxResults:             s.opts.maxResults,
		ForceTerminate:         s.opts.forceTerminate,
		CancelOnBudgetExceeded: s.opts.cancelOnBudgetExceeded,
		Controller:             rc,
		Logger:                 logger.Logger,
		OnPartition: func(_, subsets int, elapsed time.Duration, err error) {
			s.opts.metricsCollector.RecordPartition(subsets, elapsed, err)
		},
	})

	out, err := d.Run(ctx, s.backtracker(t))
	if err != nil {
		return nil, s.fail(ctx, start, translateError(err))
	}

	res := &Results{
		Collection: out.Collection,
		Target:     set.Target(),
		Truncated:  out.Truncated,
		Partitions: out.Partitions,
		Pruned:     out.Pruned,
		Elapsed:    time.Since(start),
		values:     set.Values(),
	}

	found := res.Len()
	var solveErr error
	if len(out.Failures) > 0 {
		if s.opts.allowPartial {
			solveErr = newPartitionFailureError(out.Failures, res)
		} else {
			solveErr = newPartitionFailureError(out.Failures, nil)
			res = nil
		}
	}

	elapsed := time.Since(start)
	s.opts.metricsCollector.RecordSolve(found, elapsed, solveErr)
	logger.LogSolve(ctx, found, len(out.Failures), out.Truncated, elapsed, solveErr)

	return res, solveErr
}

func (s *Solver) fail(ctx context.Context, start time.Time, err error) error {
	s.opts.metricsCollector.RecordSolve(0, time.Since(start), err)
	s.opts.logger.LogSolve(ctx, 0, 0, false, time.Since(start), err)
	return err
}

func (s *Solver) controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes: s.opts.memoryLimit,
		MaxWorkers:       int64(max(s.opts.parallelism, 1)),
	})
}

func (s *Solver) tableConfig() table.Config {
	return table.Config{MaxTarget: s.opts.maxTarget}
}

func (s *Solver) backtracker(t *table.Table) *backtrack.Backtracker {
	return backtrack.New(t, func(o *backtrack.Options) {
		o.MaxSubsetLength = s.opts.maxSubsetLength
		o.Verify = s.opts.verify
	})
}

// buildTable runs the pre-flight checks, reserves the table memory and builds
// the table. The reservation is held on success.
func (s *Solver) buildTable(ctx context.Context, rc *resource.Controller, set *weights.Set) (*table.Table, error) {
	cfg := s.tableConfig()
	if err := table.Check(set.Target(), cfg); err != nil {
		return nil, translateError(err)
	}

	estimate := table.EstimateBytes(set.Len(), set.Target())
	if err := rc.AcquireMemory(estimate); err != nil {
		s.opts.logger.LogBudgetRejected(ctx, ResourceTableMemory, estimate, rc.MemoryLimit())
		return nil, &ResourceBudgetExceededError{
			Resource:  ResourceTableMemory,
			Requested: estimate,
			Limit:     rc.MemoryLimit(),
			cause:     err,
		}
	}

	start := time.Now()
	t, err := table.Build(ctx, set, cfg)
	if err != nil {
		rc.ReleaseMemory(estimate)
		s.opts.metricsCollector.RecordTableBuild(0, time.Since(start), err)
		s.opts.logger.LogTableBuild(ctx, 0, 0, time.Since(start), err)
		return nil, translateError(err)
	}
	// Shared rows make the real size at most the estimate.
	rc.ReleaseMemory(estimate - t.SizeBytes())

	s.opts.metricsCollector.RecordTableBuild(t.SizeBytes(), time.Since(start), nil)
	s.opts.logger.LogTableBuild(ctx, t.SizeBytes(), t.ReachableSums(), time.Since(start), nil)

	return t, nil
}

// checkProjected rejects a solve whose result count would exceed the
// configured ceiling. MaxResults bounds the projection.
func (s *Solver) checkProjected(ctx context.Context, rc *resource.Controller, set *weights.Set) error {
	count, err := s.countSolutions(ctx, rc, set)
	if err != nil {
		return err
	}
	if s.opts.maxResults > 0 {
		count = min(count, uint64(s.opts.maxResults))
	}
	if count <= s.opts.maxProjectedResults {
		return nil
	}

	requested := int64(math.MaxInt64)
	if count < math.MaxInt64 {
		requested = int64(count)
	}
	limit := int64(math.MaxInt64)
	if s.opts.maxProjectedResults < math.MaxInt64 {
		limit = int64(s.opts.maxProjectedResults)
	}
	s.opts.logger.LogBudgetRejected(ctx, ResourceProjectedResults, requested, limit)

	return &ResourceBudgetExceededError{
		Resource:  ResourceProjectedResults,
		Requested: requested,
		Limit:     limit,
	}
}

// countSolutions counts with the count buffer charged to rc for the
// duration of the count.
func (s *Solver) countSolutions(ctx context.Context, rc *resource.Controller, set *weights.Set) (uint64, error) {
	cfg := s.tableConfig()
	if err := table.Check(set.Target(), cfg); err != nil {
		return 0, translateError(err)
	}

	bytes := table.CountBytes(set.Target())
	if err := rc.AcquireMemory(bytes); err != nil {
		s.opts.logger.LogBudgetRejected(ctx, ResourceCountMemory, bytes, rc.MemoryLimit())
		return 0, &ResourceBudgetExceededError{
			Resource:  ResourceCountMemory,
			Requested: bytes,
			Limit:     rc.MemoryLimit(),
			cause:     err,
		}
	}
	defer rc.ReleaseMemory(bytes)

	n, err := table.CountSolutions(ctx, set, cfg)
	return n, translateError(err)
}
