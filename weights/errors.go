package weights

import "fmt"

// TargetField is the InvalidInputError.Field value used for the target.
const TargetField = "target"

// InvalidInputError indicates a malformed weight list or target.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidInputError struct {
	// Field names the offending input, e.g. "weights[3]", "weights" or "target".
	Field string
	// Value is the offending value when one applies.
	Value  float64
	Reason string
	cause  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.cause }

func weightField(i int) string {
	return fmt.Sprintf("weights[%d]", i)
}
