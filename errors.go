package subsetsum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/subsetsum/internal/dispatch"
	"github.com/hupe1980/subsetsum/internal/resource"
	"github.com/hupe1980/subsetsum/internal/table"
	"github.com/hupe1980/subsetsum/weights"
)

var (
	// ErrForceTerminated marks a partition stopped mid-flight by cancellation
	// under the force-terminate policy.
	ErrForceTerminated = dispatch.ErrForceTerminated

	// ErrPartitionPanic marks a partition whose worker panicked.
	ErrPartitionPanic = dispatch.ErrPartitionPanic

	// ErrPartitionCancelled marks a partition that was never started.
	ErrPartitionCancelled = dispatch.ErrPartitionCancelled
)

// Budgeted resources reported by ResourceBudgetExceededError.
const (
	ResourceTableMemory      = "table memory"
	ResourceProjectedResults = "projected results"
	ResourceCountMemory      = "count memory"
	ResourceResultMemory     = "result memory"
)

// InvalidInputError indicates a negative, non-finite, non-integral or
// oversized weight list or target.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
	cause  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.cause }

// TargetTooLargeError indicates a target beyond the configured ceiling.
// It is reported before any table memory is allocated.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type TargetTooLargeError struct {
	Target int64
	Max    int64
	cause  error
}

func (e *TargetTooLargeError) Error() string {
	return fmt.Sprintf("target %d exceeds maximum %d", e.Target, e.Max)
}

func (e *TargetTooLargeError) Unwrap() error { return e.cause }

// ResourceBudgetExceededError indicates that the table or the result set
// would exceed a configured ceiling.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ResourceBudgetExceededError struct {
	Resource  string
	Requested int64
	Limit     int64
	cause     error
}

func (e *ResourceBudgetExceededError) Error() string {
	return fmt.Sprintf("%s budget exceeded: requested %d, limit %d", e.Resource, e.Requested, e.Limit)
}

func (e *ResourceBudgetExceededError) Unwrap() error { return e.cause }

// PartitionFailure records one failed partition.
type PartitionFailure struct {
	Partition int
	Err       error
}

// PartitionFailureError reports partitions that failed or were
// force-terminated during a parallel solve.
//
// Partial holds the merged results of every successful partition when
// partial results are allowed, and is nil otherwise.
type PartitionFailureError struct {
	Failures []PartitionFailure
	Partial  *Results
}

func (e *PartitionFailureError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = fmt.Sprint(f.Partition)
	}
	return fmt.Sprintf("%d partition(s) failed: [%s]", len(e.Failures), strings.Join(ids, " "))
}

// Unwrap returns the per-partition errors.
func (e *PartitionFailureError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

func newPartitionFailureError(failures []dispatch.Failure, partial *Results) *PartitionFailureError {
	out := make([]PartitionFailure, len(failures))
	for i, f := range failures {
		out[i] = PartitionFailure{Partition: f.Partition, Err: translateError(f.Err)}
	}
	return &PartitionFailureError{Failures: out, Partial: partial}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ie *weights.InvalidInputError
	if errors.As(err, &ie) {
		return &InvalidInputError{Field: ie.Field, Value: ie.Value, Reason: ie.Reason, cause: err}
	}
	var tl *table.TargetTooLargeError
	if errors.As(err, &tl) {
		return &TargetTooLargeError{Target: tl.Target, Max: tl.Max, cause: err}
	}
	var le *resource.LimitError
	if errors.As(err, &le) {
		return &ResourceBudgetExceededError{
			Resource:  ResourceResultMemory,
			Requested: le.Used + le.Requested,
			Limit:     le.Limit,
			cause:     err,
		}
	}

	return err
}
