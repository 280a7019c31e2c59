// Package network routes carriers through the stations of a schema along the
// carrier's own itinerary.
package network

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/viant/fluxpath/internal/clock"
	"github.com/viant/fluxpath/internal/logging"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/tracing"
)

// Network is the routing engine bound to one schema
type Network struct {
	schema       *schema.Schema
	logger       logr.Logger
	observer     Observer
	validatePath bool
}

// Schema returns the bound schema
func (n *Network) Schema() *schema.Schema {
	return n.schema
}

// SendCarrier runs the carrier from its cursor until the end of its itinerary.
// A carrier that already reached the end is rewound first. The schema is sealed
// by the first traversal.
func (n *Network) SendCarrier(ctx context.Context, c *carrier.Carrier) (err error) {
	n.schema.Seal()
	if c.Done() {
		c.Rewind()
	}
	started := clock.Now()
	ctx, span := tracing.StartSpan(ctx, "fluxpath.carrier", map[string]string{
		tracing.CarrierIDKey: c.ID,
	})
	defer func() {
		tracing.EndSpan(span, err)
		elapsed := clock.Since(started)
		n.observer.OnTraversal(c, elapsed, err)
		if err != nil {
			n.logger.Error(err, "traversal failed", "carrier", c.ID, "position", c.Position())
			return
		}
		c.MarkTraversed()
		n.logger.V(1).Info("traversal done", "carrier", c.ID, "elapsed", elapsed)
	}()
	if n.validatePath {
		if err = n.schema.ValidatePath(c.Itinerary()); err != nil {
			return err
		}
	}
	last := ""
	for !c.Done() {
		token := c.Token()
		if err = n.dispatch(ctx, c, token, last); err != nil {
			return err
		}
		last = token
		c.Advance()
	}
	return nil
}

// dispatch executes the station at the cursor
func (n *Network) dispatch(ctx context.Context, c *carrier.Carrier, token, last string) (err error) {
	name, gate, position := c.Station(), c.Gate(), c.Position()
	aStation, ok := n.schema.Lookup(name)
	if !ok {
		return &schema.UnknownStationError{Token: token}
	}
	n.assembleInputs(c, token, last)

	ctx, span := tracing.StartSpan(ctx, "fluxpath.station", map[string]string{
		tracing.CarrierIDKey: c.ID,
		tracing.StationKey:   name,
		tracing.GateKey:      gate,
	})
	span.WithInt(tracing.PositionKey, position)
	c.Restore(position)
	started := clock.Now()
	output, err := aStation.Block.Execute(ctx, c.Payload, c.Context, c)
	n.observer.OnStation(name, gate, clock.Since(started), err)
	tracing.EndSpan(span, err)
	if err != nil {
		if aStation.RaiseError {
			c.Restore(position)
			return &StationError{CarrierID: c.ID, Token: token, Position: position, Err: err}
		}
		n.logger.Error(err, "station failed, payload unchanged", "carrier", c.ID, "station", token, "position", position)
		c.Record(token, c.Payload)
		return nil
	}
	n.logger.V(2).Info("station done", "carrier", c.ID, "station", token, "position", position)
	c.Payload = output
	c.Record(token, output)
	return nil
}

// assembleInputs collects recorded outputs of the logical upstream stations of
// token. A station fed by a single branch that did not run immediately before
// it receives that branch output as payload.
func (n *Network) assembleInputs(c *carrier.Carrier, token, last string) {
	upstream := c.Itinerary().InputsOf(token)
	var inputs []carrier.Input
	for _, candidate := range upstream {
		if output, ok := c.Output(candidate); ok {
			inputs = append(inputs, carrier.Input{Station: candidate, Payload: output})
		}
	}
	c.SetInputs(inputs)
	if len(upstream) != 1 || upstream[0] == last || len(inputs) != 1 {
		return
	}
	c.Payload = inputs[0].Payload
}

// New creates a network for aSchema
func New(aSchema *schema.Schema, options ...Option) *Network {
	ret := &Network{
		schema:   aSchema,
		logger:   logging.New("network"),
		observer: nopObserver{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
