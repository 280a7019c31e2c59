package dao

import "errors"

// Sentinel errors shared by definition stores; detect with errors.Is.
var (
	// ErrNotFound is returned when the requested entity is absent.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates an empty or otherwise invalid key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
