package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hupe1980/subsetsum/internal/backtrack"
	"github.com/hupe1980/subsetsum/internal/resource"
	"github.com/hupe1980/subsetsum/internal/table"
	"github.com/hupe1980/subsetsum/model"
	"github.com/hupe1980/subsetsum/testutil"
	"github.com/hupe1980/subsetsum/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBacktracker(t *testing.T, values []int64, target int64, optFns ...func(*backtrack.Options)) *backtrack.Backtracker {
	t.Helper()
	set, err := weights.NormalizeInts(values, target, 0)
	require.NoError(t, err)
	tbl, err := table.Build(t.Context(), set, table.Config{})
	require.NoError(t, err)
	return backtrack.New(tbl, optFns...)
}

func serial(t *testing.T, b *backtrack.Backtracker) []model.Subset {
	t.Helper()
	out, err := b.Collect(t.Context(), b.FullRoot())
	require.NoError(t, err)
	return out
}

func sequence(values ...int64) []int64 { return values }

func TestParallelMatchesSerial(t *testing.T) {
	rng := testutil.NewRNG(99)

	inputs := []struct {
		values []int64
		target int64
	}{
		{sequence(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), 20},
		{sequence(2, 3, 7, 8, 10), 11},
		{sequence(3, 5), 1},
		{sequence(3, 5), 0},
		{sequence(0, 0, 1, 1, 2), 2},
	}
	for i := 0; i < 5; i++ {
		values := rng.WeightsWithRepeats(16, 6, 12)
		inputs = append(inputs, struct {
			values []int64
			target int64
		}{values, rng.TargetFor(values)})
	}

	for _, in := range inputs {
		b := newBacktracker(t, in.values, in.target)
		want := serial(t, b)

		for _, parallelism := range []int{1, 2, 4, 8} {
			for _, depth := range []int{-1, 0, 1, 3, 6, 12} {
				d := New(Config{Parallelism: parallelism, PartitionDepth: depth})
				out, err := d.Run(t.Context(), b)
				require.NoError(t, err)
				require.Empty(t, out.Failures)
				assert.False(t, out.Truncated)
				// Ascending partition merge reproduces the serial order.
				assert.Equal(t, want, out.Collection.Subsets(),
					"values %v target %d parallelism %d depth %d", in.values, in.target, parallelism, depth)
			}
		}
	}
}

func TestPlanPartitionsAreDisjointAndComplete(t *testing.T) {
	values := sequence(1, 2, 3, 4, 5, 6, 7, 8)
	b := newBacktracker(t, values, 12)
	want := testutil.Keys(testutil.BruteForce(values, 12))

	for depth := 0; depth <= len(values); depth++ {
		parts := Plan(b, depth)
		require.Len(t, parts, 1<<depth)

		seen := map[string]int{}
		var all []model.Subset
		for _, p := range parts {
			got, err := b.Collect(t.Context(), p.Root)
			require.NoError(t, err)
			if p.Pruned {
				continue
			}
			for _, s := range got {
				if prev, ok := seen[s.Key()]; ok {
					t.Fatalf("depth %d: subset %s in partitions %d and %d", depth, s.Key(), prev, p.ID)
				}
				seen[s.Key()] = p.ID
			}
			all = append(all, got...)
		}
		assert.Equal(t, want, testutil.Keys(all), "depth %d", depth)
	}
}

func TestPlanPrunesUnreachableAssignments(t *testing.T) {
	// Target 1 is reachable only via index 0, so every assignment that
	// includes index 2 or 1 is pruned.
	b := newBacktracker(t, sequence(1, 5, 7), 1)
	parts := Plan(b, 2)

	pruned := 0
	for _, p := range parts {
		if p.Pruned {
			pruned++
		}
	}
	assert.Equal(t, 3, pruned)
	assert.False(t, parts[3].Pruned, "exclude/exclude is the only viable partition")

	// An infeasible target prunes everything.
	for _, p := range Plan(newBacktracker(t, sequence(3, 5), 1), 2) {
		assert.True(t, p.Pruned)
	}
}

func TestPlanRespectsMaxSubsetLength(t *testing.T) {
	b := newBacktracker(t, sequence(1, 1, 1, 1), 2, func(o *backtrack.Options) { o.MaxSubsetLength = 1 })
	for _, p := range Plan(b, 2) {
		if !p.Pruned {
			assert.LessOrEqual(t, len(p.Root.Includes), 1)
		}
	}
	assert.True(t, Plan(b, 2)[0].Pruned, "include/include exceeds the cap")
}

func TestAutoDepth(t *testing.T) {
	assert.Equal(t, 0, AutoDepth(1, 50))
	assert.Equal(t, 3, AutoDepth(2, 50))
	assert.Equal(t, 4, AutoDepth(4, 50))
	assert.Equal(t, 5, AutoDepth(8, 50))
	assert.Equal(t, 2, AutoDepth(8, 2))
	assert.Equal(t, MaxPartitionDepth, AutoDepth(1<<30, 100))

	d := New(Config{Parallelism: 4, PartitionDepth: 40})
	assert.Equal(t, 10, d.Depth(10))
	assert.Equal(t, MaxPartitionDepth, d.Depth(100))
}

func TestPanicFailsOnlyItsPartition(t *testing.T) {
	values := sequence(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	b := newBacktracker(t, values, 15)
	want := serial(t, b)

	const depth = 2
	parts := Plan(b, depth)
	bad := -1
	for _, p := range parts {
		if !p.Pruned {
			bad = p.ID
			break
		}
	}
	require.NotEqual(t, -1, bad)
	lost, err := b.Collect(t.Context(), parts[bad].Root)
	require.NoError(t, err)
	require.NotEmpty(t, lost)

	var reported atomic.Int32
	d := New(Config{
		Parallelism:    4,
		PartitionDepth: depth,
		OnPartition: func(partition, subsets int, elapsed time.Duration, err error) {
			reported.Add(1)
		},
	})
	d.beforePartition = func(partition int) {
		if partition == bad {
			panic("boom")
		}
	}

	out, err := d.Run(t.Context(), b)
	require.NoError(t, err)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, bad, out.Failures[0].Partition)
	assert.ErrorIs(t, out.Failures[0].Err, ErrPartitionPanic)
	assert.Equal(t, int32(out.Partitions-out.Pruned), reported.Load())

	assert.Equal(t, len(want)-len(lost), out.Collection.Len())
	for _, s := range lost {
		assert.False(t, out.Collection.Has(s))
	}
	for s := range out.Collection.All() {
		assert.Equal(t, int64(15), s.Sum(values))
	}
}

func TestCancellationSkipsUnstartedPartitions(t *testing.T) {
	for _, force := range []bool{false, true} {
		t.Run(map[bool]string{false: "finish in-flight", true: "force terminate"}[force], func(t *testing.T) {
			b := newBacktracker(t, sequence(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 15,
				func(o *backtrack.Options) { o.CheckInterval = 1 })

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			first := -1
			var once sync.Once
			d := New(Config{Parallelism: 1, PartitionDepth: 3, ForceTerminate: force})
			d.beforePartition = func(partition int) {
				once.Do(func() {
					first = partition
					cancel()
				})
			}

			out, err := d.Run(ctx, b)
			require.NoError(t, err)
			require.NotEqual(t, -1, first)

			failed := map[int]error{}
			for _, f := range out.Failures {
				failed[f.Partition] = f.Err
			}

			if force {
				assert.ErrorIs(t, failed[first], ErrForceTerminated)
				assert.ErrorIs(t, failed[first], context.Canceled)
				assert.Equal(t, 0, out.Collection.Len())
			} else {
				assert.NotContains(t, failed, first)
				assert.Positive(t, out.Collection.Len())
			}

			for _, p := range Plan(b, 3) {
				if p.Pruned || p.ID == first {
					continue
				}
				assert.ErrorIs(t, failed[p.ID], ErrPartitionCancelled, "partition %d", p.ID)
			}
		})
	}
}

func TestMaxResults(t *testing.T) {
	values := sequence(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	b := newBacktracker(t, values, 20)
	all := serial(t, b)
	require.Greater(t, len(all), 10)

	t.Run("serial keeps the first results", func(t *testing.T) {
		d := New(Config{Parallelism: 1, PartitionDepth: 0, MaxResults: 10})
		out, err := d.Run(t.Context(), b)
		require.NoError(t, err)
		assert.True(t, out.Truncated)
		assert.Empty(t, out.Failures)
		assert.Equal(t, all[:10], out.Collection.Subsets())
	})

	t.Run("parallel keeps exactly the limit", func(t *testing.T) {
		d := New(Config{Parallelism: 4, PartitionDepth: 4, MaxResults: 10, ForceTerminate: true})
		out, err := d.Run(t.Context(), b)
		require.NoError(t, err)
		assert.True(t, out.Truncated)
		assert.Empty(t, out.Failures)
		assert.Equal(t, 10, out.Collection.Len())

		full := model.NewCollection(len(all))
		for _, s := range all {
			full.Add(s)
		}
		for s := range out.Collection.All() {
			assert.True(t, full.Has(s))
		}
	})

	t.Run("limit above total", func(t *testing.T) {
		d := New(Config{Parallelism: 2, PartitionDepth: 2, MaxResults: len(all) + 1})
		out, err := d.Run(t.Context(), b)
		require.NoError(t, err)
		assert.False(t, out.Truncated)
		assert.Equal(t, len(all), out.Collection.Len())
	})
}

func TestResultBudget(t *testing.T) {
	values := sequence(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	b := newBacktracker(t, values, 20)

	t.Run("cancel on budget exceeded", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 256, MaxWorkers: 2})
		d := New(Config{Parallelism: 2, PartitionDepth: 2, Controller: rc, CancelOnBudgetExceeded: true})

		out, err := d.Run(t.Context(), b)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

		var le *resource.LimitError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, int64(256), le.Limit)
	})

	t.Run("partition failure", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 256, MaxWorkers: 2})
		d := New(Config{Parallelism: 2, PartitionDepth: 2, Controller: rc})

		out, err := d.Run(t.Context(), b)
		require.NoError(t, err)
		require.NotEmpty(t, out.Failures)
		for _, f := range out.Failures {
			assert.True(t, errors.Is(f.Err, resource.ErrMemoryLimitExceeded))
		}
	})
}

func TestFailedPartitionReturnsResultQuota(t *testing.T) {
	// Partition 0 includes index 6 and yields the pairs {3,6} {4,6} {5,6};
	// partition 1 excludes it and yields the singletons {2} {1} {0}.
	b := newBacktracker(t, sequence(5, 5, 5, 1, 1, 1, 4), 5)

	// Two pairs fit, the third exhausts the budget and fails partition 0.
	// Its two accepted pairs must not count against MaxResults.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100, MaxWorkers: 1})
	d := New(Config{PartitionDepth: 1, MaxResults: 3, Controller: rc})

	out, err := d.Run(t.Context(), b)
	require.NoError(t, err)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, 0, out.Failures[0].Partition)
	assert.ErrorIs(t, out.Failures[0].Err, resource.ErrMemoryLimitExceeded)

	assert.Equal(t, []model.Subset{{2}, {1}, {0}}, out.Collection.Subsets())
	assert.True(t, out.Truncated)
	assert.Equal(t, int64(3*(subsetOverhead+8)), rc.MemoryUsage())
}

func TestParallelismFromController(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxWorkers: 3})

	d := New(Config{Controller: rc})
	assert.Equal(t, 3, d.cfg.Parallelism)
	assert.Equal(t, AutoDepth(3, 50), d.Depth(50))

	d = New(Config{Parallelism: 2, Controller: rc})
	assert.Equal(t, 2, d.cfg.Parallelism)
}
