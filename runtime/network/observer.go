package network

import (
	"time"

	"github.com/viant/fluxpath/model/carrier"
)

// Observer receives traversal notifications; implementations must be safe for
// concurrent use.
type Observer interface {
	// OnStation is called after every station invocation
	OnStation(station, gate string, elapsed time.Duration, err error)
	// OnTraversal is called once a carrier leaves the network
	OnTraversal(c *carrier.Carrier, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) OnStation(string, string, time.Duration, error)     {}
func (nopObserver) OnTraversal(*carrier.Carrier, time.Duration, error) {}
