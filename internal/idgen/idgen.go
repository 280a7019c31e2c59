// Package idgen generates carrier, session and message identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers; tests may replace it
var NewFunc = func() string { return uuid.New().String() }

// New returns a new unique identifier
func New() string { return NewFunc() }

// Child derives the identifier of a nested unit, e.g. a sub-network carrier
func Child(parent, name string) string {
	if parent == "" {
		return name
	}
	if name == "" {
		name = New()
	}
	return parent + "/" + name
}
