package backtrack

import (
	"errors"
	"fmt"

	"github.com/hupe1980/subsetsum/model"
)

// ErrInvalidRoot is returned when a Root does not describe a valid descent.
var ErrInvalidRoot = errors.New("invalid backtracking root")

// InvariantError indicates that an emitted subset failed verification.
type InvariantError struct {
	Subset model.Subset
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation for subset [%s]: %s", e.Subset.Key(), e.Reason)
}
