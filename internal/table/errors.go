package table

import "fmt"

// TargetTooLargeError indicates that the target exceeds the configured ceiling.
// It is returned before any table memory is allocated.
type TargetTooLargeError struct {
	Target int64
	Max    int64
}

func (e *TargetTooLargeError) Error() string {
	return fmt.Sprintf("target %d exceeds maximum %d", e.Target, e.Max)
}
