// Package subnetwork provides a station running a nested itinerary against a
// nested network.
package subnetwork

import (
	"context"
	"fmt"

	"github.com/viant/fluxpath/internal/idgen"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
)

// Kind names the sub-network station type
const Kind = "subnetwork"

// Config configures the station. Path accepts any itinerary spec. InputKey
// selects the nested payload from a map payload; OutputKey stores the nested
// result into a copy of the map payload instead of replacing it.
type Config struct {
	Network   string      `json:"network,omitempty" yaml:"network,omitempty"`
	Path      interface{} `json:"path,omitempty" yaml:"path,omitempty"`
	InputKey  string      `json:"inputKey,omitempty" yaml:"inputKey,omitempty"`
	OutputKey string      `json:"outputKey,omitempty" yaml:"outputKey,omitempty"`
}

// Resolver returns a nested network by name
type Resolver func(name string) (*network.Network, error)

// Block runs a nested carrier sharing the outer carrier context
type Block struct {
	name      string
	config    Config
	network   *network.Network
	itinerary *path.Logical
}

// Execute runs the nested traversal
func (b *Block) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	input := payload
	aMap, isMap := payload.(map[string]interface{})
	if b.config.InputKey != "" {
		if !isMap {
			return nil, fmt.Errorf("%v: unsupported payload type: %T, expected map", b.name, payload)
		}
		input = aMap[b.config.InputKey]
	}
	id := b.name
	var options = []carrier.Option{carrier.WithSharedContext(state)}
	if c != nil {
		id = idgen.Child(c.ID, b.name)
		options = append(options, carrier.WithParent(c))
	}
	inner, err := carrier.New(id, input, b.itinerary, options...)
	if err != nil {
		return nil, err
	}
	if err = b.network.SendCarrier(ctx, inner); err != nil {
		return nil, err
	}
	if b.config.OutputKey == "" {
		return inner.Payload, nil
	}
	if !isMap {
		return nil, fmt.Errorf("%v: unsupported payload type: %T, expected map", b.name, payload)
	}
	ret := make(map[string]interface{}, len(aMap)+1)
	for k, v := range aMap {
		ret[k] = v
	}
	ret[b.config.OutputKey] = inner.Payload
	return ret, nil
}

// New creates a sub-network station running spec against net; options control
// how the nested itinerary is parsed
func New(name string, net *network.Network, config Config, options ...path.Option) (*Block, error) {
	if net == nil {
		return nil, fmt.Errorf("%v: network was nil", name)
	}
	itinerary, err := path.Parse(config.Path, options...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	if itinerary.IsEmpty() {
		return nil, fmt.Errorf("%v: path was empty", name)
	}
	return &Block{name: name, config: config, network: net, itinerary: itinerary}, nil
}

// NewFactory returns a factory resolving nested networks by the config network name
func NewFactory(resolver Resolver, options ...path.Option) station.Factory {
	return func(name string, config map[string]interface{}) (station.Block, error) {
		aConfig := Config{}
		if err := station.DecodeConfig(config, &aConfig); err != nil {
			return nil, fmt.Errorf("invalid %v config: %w", name, err)
		}
		if spec, ok := config["path"]; ok {
			aConfig.Path = spec
		}
		if resolver == nil {
			return nil, fmt.Errorf("%v: network resolver was nil", name)
		}
		net, err := resolver(aConfig.Network)
		if err != nil {
			return nil, err
		}
		return New(name, net, aConfig, options...)
	}
}
