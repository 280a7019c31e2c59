package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrSealed is returned when a schema is mutated after carriers started traversing it
	ErrSealed = errors.New("schema: sealed")
	// ErrDuplicateName is matched by DuplicateNameError
	ErrDuplicateName = errors.New("schema: duplicate station name")
	// ErrUnknownStation is matched by UnknownStationError
	ErrUnknownStation = errors.New("schema: unknown station")
	// ErrMissingEdge is returned when an itinerary uses an undeclared connection
	ErrMissingEdge = errors.New("schema: missing edge")
)

// DuplicateNameError reports a second registration under an existing name
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("station %q already registered", e.Name)
}

// Is matches ErrDuplicateName
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// UnknownStationError reports an itinerary token without a bound station
type UnknownStationError struct {
	Token string
}

func (e *UnknownStationError) Error() string {
	return fmt.Sprintf("unknown station %q", e.Token)
}

// Is matches ErrUnknownStation
func (e *UnknownStationError) Is(target error) bool {
	return target == ErrUnknownStation
}
