package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/subsetsum/internal/backtrack"
	"github.com/hupe1980/subsetsum/internal/resource"
	"github.com/hupe1980/subsetsum/model"
)

// subsetOverhead approximates the slice header and allocation cost of a subset.
const subsetOverhead = 24

// Config configures a Dispatcher.
type Config struct {
	// Parallelism is the number of partitions enumerated at once.
	// If <= 0, the Controller's worker slots are used, or
	// runtime.GOMAXPROCS(0) without a Controller.
	Parallelism int

	// PartitionDepth is the number of top-level decisions to split on.
	// If < 0, AutoDepth is used.
	PartitionDepth int

	// MaxResults stops enumeration once that many subsets were accepted.
	// If 0, enumeration is complete.
	MaxResults int

	// ForceTerminate stops in-flight partitions when the run is cancelled.
	// Otherwise in-flight partitions run to completion.
	ForceTerminate bool

	// CancelOnBudgetExceeded aborts the whole run when result memory is
	// exhausted. Otherwise only the exhausting partition fails.
	CancelOnBudgetExceeded bool

	// Controller provides worker slots and result memory accounting.
	// If nil, a controller with Parallelism slots and no memory limit is used.
	Controller *resource.Controller

	// Logger receives partition and progress logs. If nil, logs are discarded.
	Logger *slog.Logger

	// OnPartition is called after each started partition finishes.
	OnPartition func(partition, subsets int, elapsed time.Duration, err error)
}

// Outcome is the merged result of a run.
type Outcome struct {
	// Collection holds the subsets of every successful partition, merged in
	// ascending partition order.
	Collection *model.Collection
	// Failures lists failed partitions in ascending order.
	Failures []Failure
	// Partitions is the number of planned partitions.
	Partitions int
	// Pruned is the number of partitions proven empty at planning time.
	Pruned int
	// Truncated reports that enumeration stopped at MaxResults.
	Truncated bool
}

// Dispatcher runs partitions of a backtracking search concurrently.
type Dispatcher struct {
	cfg      Config
	rc       *resource.Controller
	logger   *slog.Logger
	progress *rate.Sometimes

	// beforePartition is a test hook invoked at the start of each partition.
	beforePartition func(partition int)
}

// New creates a Dispatcher.
func New(cfg Config) *Dispatcher {
	rc := cfg.Controller
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
		if rc != nil {
			cfg.Parallelism = rc.MaxWorkers()
		}
	}
	if rc == nil {
		rc = resource.NewController(resource.Config{MaxWorkers: int64(cfg.Parallelism)})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		cfg:      cfg,
		rc:       rc,
		logger:   logger,
		progress: &rate.Sometimes{Interval: time.Second},
	}
}

// Depth returns the partition depth used for n weights.
func (d *Dispatcher) Depth(n int) int {
	if d.cfg.PartitionDepth < 0 {
		return AutoDepth(d.cfg.Parallelism, n)
	}
	return clampDepth(d.cfg.PartitionDepth, n)
}

type runState struct {
	accepted atomic.Int64
	cancel   context.CancelCauseFunc
}

// Run enumerates every subset reachable by b.
//
// Partition failures are reported in the Outcome, not as an error. Run only
// returns an error when result memory is exhausted under the
// CancelOnBudgetExceeded policy.
func (d *Dispatcher) Run(ctx context.Context, b *backtrack.Backtracker) (*Outcome, error) {
	parts := Plan(b, d.Depth(b.Table().Len()))

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	st := &runState{cancel: cancel}
	results := make([][]model.Subset, len(parts))
	errs := make([]error, len(parts))

	d.logger.DebugContext(ctx, "dispatching partitions",
		"partitions", len(parts),
		"parallelism", d.cfg.Parallelism,
	)

	var g errgroup.Group
	for idx, p := range parts {
		if p.Pruned {
			continue
		}
		if err := d.rc.AcquireWorker(runCtx); err != nil {
			d.skip(runCtx, parts[idx:], errs)
			break
		}
		g.Go(func() error {
			defer d.rc.ReleaseWorker()
			results[p.ID], errs[p.ID] = d.runPartition(runCtx, b, p, st)
			if d.cfg.CancelOnBudgetExceeded && errors.Is(errs[p.ID], resource.ErrMemoryLimitExceeded) {
				return errs[p.ID]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.WarnContext(ctx, "run aborted", "error", err)
		return nil, err
	}

	out := &Outcome{Partitions: len(parts)}
	total := 0
	for _, r := range results {
		total += len(r)
	}
	out.Collection = model.NewCollection(total)

	for _, p := range parts {
		switch {
		case p.Pruned:
			out.Pruned++
		case errs[p.ID] != nil:
			out.Failures = append(out.Failures, Failure{Partition: p.ID, Err: errs[p.ID]})
		default:
			for _, s := range results[p.ID] {
				out.Collection.Add(s)
			}
		}
	}

	if errors.Is(context.Cause(runCtx), errEnough) {
		out.Truncated = true
	}

	if len(out.Failures) > 0 {
		d.logger.WarnContext(ctx, "partitions failed",
			"failed", len(out.Failures),
			"partitions", len(parts),
		)
	}

	return out, nil
}

// skip marks partitions that will never start.
// Stopping at MaxResults is not a failure.
func (d *Dispatcher) skip(ctx context.Context, parts []Partition, errs []error) {
	cause := context.Cause(ctx)
	if errors.Is(cause, errEnough) {
		return
	}
	for _, p := range parts {
		if !p.Pruned {
			errs[p.ID] = fmt.Errorf("%w: partition %d: %w", ErrPartitionCancelled, p.ID, cause)
		}
	}
}

func (d *Dispatcher) runPartition(ctx context.Context, b *backtrack.Backtracker, p Partition, st *runState) (out []model.Subset, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			d.discard(st, out)
			out = nil
			err = fmt.Errorf("%w: partition %d: %v", ErrPartitionPanic, p.ID, r)
		}
		d.report(ctx, p.ID, len(out), time.Since(start), err)
	}()

	if d.beforePartition != nil {
		d.beforePartition(p.ID)
	}

	walkCtx := ctx
	if !d.cfg.ForceTerminate {
		walkCtx = context.WithoutCancel(ctx)
	}

	var budgetErr error
	walkErr := b.Walk(walkCtx, p.Root, func(s model.Subset) bool {
		n := st.accepted.Add(1)
		if limit := int64(d.cfg.MaxResults); limit > 0 && n > limit {
			st.cancel(errEnough)
			return false
		}
		if err := d.rc.AcquireMemory(int64(len(s))*8 + subsetOverhead); err != nil {
			st.accepted.Add(-1)
			budgetErr = err
			if d.cfg.CancelOnBudgetExceeded {
				st.cancel(err)
			}
			return false
		}
		out = append(out, s)

		if limit := int64(d.cfg.MaxResults); limit > 0 && n == limit {
			st.cancel(errEnough)
		}
		d.progress.Do(func() {
			d.logger.DebugContext(ctx, "enumeration progress", "accepted", n)
		})
		return true
	})

	switch {
	case budgetErr != nil:
		d.discard(st, out)
		return nil, fmt.Errorf("partition %d: %w", p.ID, budgetErr)
	case walkErr == nil:
		return out, nil
	case errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded):
		// Stopping at MaxResults keeps what was accepted.
		if errors.Is(context.Cause(ctx), errEnough) {
			return out, nil
		}
		d.discard(st, out)
		return nil, fmt.Errorf("%w: partition %d: %w", ErrForceTerminated, p.ID, context.Cause(ctx))
	default:
		d.discard(st, out)
		return nil, fmt.Errorf("partition %d: %w", p.ID, walkErr)
	}
}

// discard returns the memory and the result quota of a failed partition's
// subsets, so later partitions can still fill MaxResults.
func (d *Dispatcher) discard(st *runState, subsets []model.Subset) {
	st.accepted.Add(-int64(len(subsets)))
	for _, s := range subsets {
		d.rc.ReleaseMemory(int64(len(s))*8 + subsetOverhead)
	}
}

func (d *Dispatcher) report(ctx context.Context, partition, subsets int, elapsed time.Duration, err error) {
	if err != nil {
		d.logger.WarnContext(ctx, "partition failed",
			"partition", partition,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		d.logger.DebugContext(ctx, "partition completed",
			"partition", partition,
			"subsets", subsets,
			"elapsed", elapsed,
		)
	}
	if d.cfg.OnPartition != nil {
		d.cfg.OnPartition(partition, subsets, elapsed, err)
	}
}
