package carrier

import (
	"errors"
	"fmt"
)

// ErrInvalidJump is matched by every InvalidJumpError
var ErrInvalidJump = errors.New("invalid cursor jump")

// InvalidJumpError reports a cursor move that is not strictly forward or lands outside the itinerary
type InvalidJumpError struct {
	CarrierID string
	From      int
	To        int
	Length    int
	Token     string
}

func (e *InvalidJumpError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("carrier %v: station %q not found after position %d", e.CarrierID, e.Token, e.From)
	}
	return fmt.Sprintf("carrier %v: cannot move cursor from %d to %d (itinerary length %d)", e.CarrierID, e.From, e.To, e.Length)
}

// Is matches ErrInvalidJump
func (e *InvalidJumpError) Is(target error) bool {
	return target == ErrInvalidJump
}
