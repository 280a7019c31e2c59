package supervisor

import (
	"errors"
	"fmt"
)

var (
	// ErrPredicate is matched by PredicateError
	ErrPredicate = errors.New("supervisor: predicate failed")
	// ErrSessionClosed is returned when work is added to a closed session
	ErrSessionClosed = errors.New("supervisor: session closed")
)

// PredicateError reports a predicate failure or panic; it aborts the carrier re-queue loop
type PredicateError struct {
	CarrierID string
	Iteration int
	Err       error
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("carrier %v: predicate failed after iteration %d: %v", e.CarrierID, e.Iteration, e.Err)
}

// Unwrap returns the underlying error
func (e *PredicateError) Unwrap() error {
	return e.Err
}

// Is matches ErrPredicate
func (e *PredicateError) Is(target error) bool {
	return target == ErrPredicate
}
