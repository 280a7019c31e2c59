package path

import (
	"errors"
	"fmt"
)

// ErrMalformedSpec is matched (errors.Is) by every MalformedPathSpecError
var ErrMalformedSpec = errors.New("malformed path spec")

// MalformedPathSpecError reports an invalid path specification
type MalformedPathSpecError struct {
	Spec   interface{}
	Reason string
}

func (e *MalformedPathSpecError) Error() string {
	return fmt.Sprintf("malformed path spec %v: %s", e.Spec, e.Reason)
}

// Is matches ErrMalformedSpec
func (e *MalformedPathSpecError) Is(target error) bool {
	return target == ErrMalformedSpec
}

func malformed(spec interface{}, format string, args ...interface{}) error {
	return &MalformedPathSpecError{Spec: spec, Reason: fmt.Sprintf(format, args...)}
}
