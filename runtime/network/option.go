package network

import (
	"github.com/go-logr/logr"
)

// Option customises a Network
type Option func(n *Network)

// WithLogger sets the network logger
func WithLogger(logger logr.Logger) Option {
	return func(n *Network) {
		n.logger = logger
	}
}

// WithObserver sets traversal observer
func WithObserver(observer Observer) Option {
	return func(n *Network) {
		if observer != nil {
			n.observer = observer
		}
	}
}

// WithPathValidation checks every itinerary against declared schema edges
// before the traversal starts.
func WithPathValidation(enabled bool) Option {
	return func(n *Network) {
		n.validatePath = enabled
	}
}
