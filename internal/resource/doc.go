// Package resource implements the per-solve resource controller.
//
// The Controller provides centralized management of two resource types:
//
//   - Memory: Track and limit bytes held by the reachability table and the
//     emitted subsets (non-blocking, fail-fast)
//   - Concurrency: Limit the number of partitions enumerated at once
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with a *LimitError (matching ErrMemoryLimitExceeded) if the limit would be
// exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(tableBytes); err != nil {
//	    // fail before allocating the table
//	}
//	defer rc.ReleaseMemory(tableBytes)
//
// # Worker Slots
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers: 4,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err // the partition is never started
//	}
//	defer rc.ReleaseWorker()
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
