// Package codec provides stations decoding and encoding textual payloads.
package codec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/station"
)

const (
	// JSONLoadKind decodes JSON text
	JSONLoadKind = "json.load"
	// JSONDumpKind encodes payload as JSON text
	JSONDumpKind = "json.dump"
	// CSVLoadKind parses CSV text
	CSVLoadKind = "csv.load"
)

// JSONLoad decodes a string or []byte payload
type JSONLoad struct{}

// Execute decodes payload
func (j *JSONLoad) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	data, err := asBytes(payload)
	if err != nil {
		return nil, err
	}
	var ret interface{}
	if err = json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return ret, nil
}

// JSONDumpConfig configures JSONDump
type JSONDumpConfig struct {
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`
}

// JSONDump encodes payload into a JSON string
type JSONDump struct {
	config JSONDumpConfig
}

// Execute encodes payload
func (j *JSONDump) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	var data []byte
	var err error
	if j.config.Indent != "" {
		data, err = json.MarshalIndent(payload, "", j.config.Indent)
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return string(data), nil
}

// NewJSONLoad creates json.load station
func NewJSONLoad(name string, config map[string]interface{}) (station.Block, error) {
	return &JSONLoad{}, nil
}

// NewJSONDump creates json.dump station
func NewJSONDump(name string, config map[string]interface{}) (station.Block, error) {
	ret := &JSONDump{}
	if err := station.DecodeConfig(config, &ret.config); err != nil {
		return nil, fmt.Errorf("invalid %v config: %w", name, err)
	}
	return ret, nil
}

func asBytes(payload interface{}) ([]byte, error) {
	switch actual := payload.(type) {
	case string:
		return []byte(actual), nil
	case []byte:
		return actual, nil
	default:
		return nil, fmt.Errorf("unsupported payload type: %T, expected text", payload)
	}
}
