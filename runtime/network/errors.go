package network

import (
	"errors"
	"fmt"
)

// ErrStation is matched by StationError
var ErrStation = errors.New("network: station execution failed")

// StationError wraps a failure raised by a station while executing a carrier
type StationError struct {
	CarrierID string
	Token     string
	Position  int
	Err       error
}

func (e *StationError) Error() string {
	return fmt.Sprintf("carrier %v: station %q at %d failed: %v", e.CarrierID, e.Token, e.Position, e.Err)
}

// Unwrap returns the station error
func (e *StationError) Unwrap() error {
	return e.Err
}

// Is matches ErrStation
func (e *StationError) Is(target error) bool {
	return target == ErrStation
}
