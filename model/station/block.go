package station

import (
	"context"

	"github.com/viant/fluxpath/model/carrier"
)

// Block is a processing station. Execute consumes the carrier payload and
// context and returns the new payload. A block may redirect the carrier
// cursor (c.MoveTo, c.MoveToStation) to skip downstream stations.
//
// Block instances are shared by all carriers visiting the station, possibly
// from many goroutines at once; any mutable state must be synchronised by the
// block itself.
type Block interface {
	Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error)
}

// BlockFunc adapts a function to the Block interface
type BlockFunc func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error)

// Execute calls f
func (f BlockFunc) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	return f(ctx, payload, state, c)
}

// Factory creates a named block from opaque key/value configuration
type Factory func(name string, config map[string]interface{}) (Block, error)

// FactoryOf returns a factory always returning block; handy for stateless blocks
func FactoryOf(block Block) Factory {
	return func(string, map[string]interface{}) (Block, error) {
		return block, nil
	}
}
