package fluxpath

import (
	"context"

	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/runtime/supervisor"
	"github.com/viant/fluxpath/service/dao/definition"
)

// Flow is a built definition ready to route carriers
type Flow struct {
	Definition *definition.Definition
	Schema     *schema.Schema
	Network    *network.Network
	service    *Service
}

// Path returns a named itinerary; an empty name selects the first one
func (f *Flow) Path(name string) (*path.Logical, error) {
	return f.Definition.Path(name, f.service.PathOptions()...)
}

// NewCarrier creates a carrier for the named itinerary seeded with context values
func (f *Flow) NewCarrier(pathName string, payload interface{}, values map[string]interface{}) (*carrier.Carrier, error) {
	itinerary, err := f.Path(pathName)
	if err != nil {
		return nil, err
	}
	return carrier.New("", payload, itinerary,
		carrier.WithContext(values),
		carrier.WithPathOptions(f.service.PathOptions()...))
}

// Send runs one traversal of the named itinerary
func (f *Flow) Send(ctx context.Context, pathName string, payload interface{}, values map[string]interface{}) (*carrier.Carrier, error) {
	aCarrier, err := f.NewCarrier(pathName, payload, values)
	if err != nil {
		return nil, err
	}
	return aCarrier, f.Network.SendCarrier(ctx, aCarrier)
}

// Supervisor returns a new supervisor over the flow network
func (f *Flow) Supervisor() *supervisor.Supervisor {
	return f.service.NewSupervisor(f.Network)
}

// Watch repeats traversals of the named itinerary while predicate holds
func (f *Flow) Watch(ctx context.Context, pathName string, payload interface{}, values map[string]interface{}, predicate supervisor.Predicate) (*supervisor.Job, error) {
	aCarrier, err := f.NewCarrier(pathName, payload, values)
	if err != nil {
		return nil, err
	}
	visor := f.Supervisor()
	job, err := visor.Add(ctx, aCarrier, false, predicate)
	if err != nil {
		return nil, err
	}
	return job, visor.Start(ctx, false)
}
