// Package basic provides general purpose stations.
package basic

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/station"
)

const (
	// PrintKind writes payload to an output stream
	PrintKind = "print"
	// ExtractKind selects a key of a map payload
	ExtractKind = "extract"
)

// PrintConfig configures Print
type PrintConfig struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Print writes the payload followed by a new line and passes it on unchanged
type Print struct {
	config PrintConfig
	mux    sync.Mutex
	writer io.Writer
}

// Execute prints payload
func (p *Print) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, err := fmt.Fprintf(p.writer, "%v%v\n", p.config.Prefix, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ExtractConfig configures Extract
type ExtractConfig struct {
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Extract returns payload[key] for map payloads
type Extract struct {
	config ExtractConfig
}

// Execute extracts the configured key
func (e *Extract) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	switch actual := payload.(type) {
	case map[string]interface{}:
		value, ok := actual[e.config.Key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", e.config.Key)
		}
		return value, nil
	case map[string]string:
		value, ok := actual[e.config.Key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", e.config.Key)
		}
		return value, nil
	case map[interface{}]interface{}:
		value, ok := actual[e.config.Key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", e.config.Key)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported payload type: %T, expected map", payload)
	}
}

// NewPrintFactory returns a print factory writing to w; nil means os.Stdout
func NewPrintFactory(w io.Writer) station.Factory {
	if w == nil {
		w = os.Stdout
	}
	return func(name string, config map[string]interface{}) (station.Block, error) {
		ret := &Print{writer: w}
		if err := station.DecodeConfig(config, &ret.config); err != nil {
			return nil, fmt.Errorf("invalid %v config: %w", name, err)
		}
		return ret, nil
	}
}

// NewExtract creates extract station; key defaults to "data"
func NewExtract(name string, config map[string]interface{}) (station.Block, error) {
	ret := &Extract{config: ExtractConfig{Key: "data"}}
	if err := station.DecodeConfig(config, &ret.config); err != nil {
		return nil, fmt.Errorf("invalid %v config: %w", name, err)
	}
	return ret, nil
}
