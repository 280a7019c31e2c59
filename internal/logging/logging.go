// Package logging provides the named structured loggers used across fluxpath.
package logging

import (
	"log"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	mux  sync.RWMutex
	root = stdr.New(log.New(os.Stderr, "", log.LstdFlags))
)

// New returns a logger named after the calling component
func New(name string) logr.Logger {
	mux.RLock()
	defer mux.RUnlock()
	return root.WithName(name)
}

// SetVerbosity sets the global V-level threshold; it returns the previous one
func SetVerbosity(v int) int {
	return stdr.SetVerbosity(v)
}

// SetRoot replaces the root logger; loggers returned earlier keep their sink
func SetRoot(logger logr.Logger) {
	mux.Lock()
	defer mux.Unlock()
	root = logger
}
