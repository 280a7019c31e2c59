package definition

import (
	"errors"
	"fmt"

	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/service/dao"
	"github.com/viant/fluxpath/station/subnetwork"
)

// ErrUnknownType reports a station type missing from the registry
var ErrUnknownType = errors.New("unknown station type")

type buildOptions struct {
	network []network.Option
	path    []path.Option
}

// BuildOption customises Build
type BuildOption func(o *buildOptions)

// WithNetworkOptions sets options of the nested networks
func WithNetworkOptions(options ...network.Option) BuildOption {
	return func(o *buildOptions) {
		o.network = append(o.network, options...)
	}
}

// WithPathOptions sets how sub-network stations parse nested itineraries
func WithPathOptions(options ...path.Option) BuildOption {
	return func(o *buildOptions) {
		o.path = append(o.path, options...)
	}
}

// Build creates stations from the registry, declares connections and returns
// the schema. Nested networks are built first and made available to
// sub-network stations by name.
func (d *Definition) Build(registry *station.Registry, options ...BuildOption) (*schema.Schema, error) {
	opts := &buildOptions{}
	for _, opt := range options {
		opt(opts)
	}
	if registry == nil {
		return nil, fmt.Errorf("%v: registry was nil", d.Name)
	}
	if len(d.Networks) > 0 {
		networks := map[string]*network.Network{}
		registry = registry.Clone()
		registry.Register(subnetwork.Kind, subnetwork.NewFactory(func(name string) (*network.Network, error) {
			if ret, ok := networks[name]; ok {
				return ret, nil
			}
			return nil, fmt.Errorf("network %q: %w", name, dao.ErrNotFound)
		}, opts.path...))
		for _, nested := range d.Networks {
			nestedSchema, err := nested.Build(registry, options...)
			if err != nil {
				return nil, fmt.Errorf("%v: failed to build network %v: %w", d.Name, nested.Name, err)
			}
			networks[nested.Name] = network.New(nestedSchema, opts.network...)
		}
	}
	ret := schema.New()
	for _, aStation := range d.Stations {
		factory := registry.Lookup(aStation.Type)
		if factory == nil {
			return nil, fmt.Errorf("%v: station %q: %w: %v", d.Name, aStation.Name, ErrUnknownType, aStation.Type)
		}
		if err := ret.Add(factory, aStation.Name, aStation.config()); err != nil {
			return nil, fmt.Errorf("%v: %w", d.Name, err)
		}
	}
	for _, chain := range d.Connections {
		if err := ret.ConnectChain(chain...); err != nil {
			return nil, fmt.Errorf("%v: %w", d.Name, err)
		}
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", d.Name, err)
	}
	return ret, nil
}
