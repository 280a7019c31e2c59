package schema

import (
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/toolbox"
)

// RaiseErrorKey is the reserved configuration key controlling error propagation
const RaiseErrorKey = "raiseError"

// Station is a named block bound in a schema
type Station struct {
	Name   string
	Block  station.Block
	Config map[string]interface{}
	// RaiseError propagates execution errors to the traversal caller; when
	// false the failure is logged and the payload is left unchanged.
	RaiseError bool
}

// StationOption customises a registered station
type StationOption func(s *Station)

// WithRaiseError controls error propagation of the station
func WithRaiseError(raise bool) StationOption {
	return func(s *Station) {
		s.RaiseError = raise
	}
}

// WithConfig records the configuration used to build the station
func WithConfig(config map[string]interface{}) StationOption {
	return func(s *Station) {
		s.Config = config
	}
}

func stationConfig(config map[string]interface{}) (map[string]interface{}, []StationOption) {
	var options []StationOption
	ret := make(map[string]interface{}, len(config))
	for k, v := range config {
		if k == RaiseErrorKey {
			options = append(options, WithRaiseError(toolbox.AsBoolean(v)))
			continue
		}
		ret[k] = v
	}
	return ret, append(options, WithConfig(ret))
}
