package dispatch

import "errors"

var (
	// ErrForceTerminated is returned for an in-flight partition stopped by
	// cancellation under the force-terminate policy.
	ErrForceTerminated = errors.New("partition force-terminated")

	// ErrPartitionCancelled is returned for a partition that was never started
	// because the run was cancelled.
	ErrPartitionCancelled = errors.New("partition cancelled before start")

	// ErrPartitionPanic is returned for a partition whose worker panicked.
	ErrPartitionPanic = errors.New("partition panicked")

	// errEnough is the cancellation cause once MaxResults subsets were accepted.
	errEnough = errors.New("result limit reached")
)

// Failure records one failed partition.
type Failure struct {
	Partition int
	Err       error
}
