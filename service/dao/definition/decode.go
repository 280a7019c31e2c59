package definition

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/viant/fluxpath/internal/yml"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

const raiseErrorKey = schema.RaiseErrorKey

var counter int32

// Decode decodes a YAML or JSON definition
func Decode(data []byte) (*Definition, error) {
	node, err := yml.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return parse("", node)
}

func parse(URL string, node *yml.Node) (*Definition, error) {
	ret := &Definition{URL: URL, Name: nameFromURL(URL)}
	if err := decodeDefinition(node, ret); err != nil {
		if URL != "" {
			return nil, fmt.Errorf("failed to parse definition from %s: %w", URL, err)
		}
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if ret.Name == "" {
		ret.Name = fmt.Sprintf("anonymous-%d", atomic.AddInt32(&counter, 1))
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func nameFromURL(URL string) string {
	if URL == "" {
		return ""
	}
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func decodeDefinition(node *yml.Node, definition *Definition) error {
	if !node.IsMap() {
		return fmt.Errorf("definition should be a mapping")
	}
	return node.Pairs(func(key string, value *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			if name := value.String(); name != "" {
				definition.Name = name
			}
		case "stations":
			stations, err := decodeStations(value)
			if err != nil {
				return fmt.Errorf("failed to parse stations: %w", err)
			}
			definition.Stations = stations
		case "connections":
			connections, err := decodeConnections(value)
			if err != nil {
				return fmt.Errorf("failed to parse connections: %w", err)
			}
			definition.Connections = connections
		case "paths":
			paths, err := decodePaths(value)
			if err != nil {
				return fmt.Errorf("failed to parse paths: %w", err)
			}
			definition.Paths = paths
		case "networks":
			if !value.IsMap() {
				return fmt.Errorf("networks should be a mapping")
			}
			return value.Pairs(func(name string, nestedNode *yml.Node) error {
				nested := &Definition{Name: name, URL: definition.URL}
				if err := decodeDefinition(nestedNode, nested); err != nil {
					return fmt.Errorf("failed to parse network %v: %w", name, err)
				}
				definition.Networks = append(definition.Networks, nested)
				return nil
			})
		}
		return nil
	})
}

// decodeStations accepts a list of station mappings or a mapping keyed by station name
func decodeStations(node *yml.Node) ([]*Station, error) {
	var ret []*Station
	switch {
	case node.IsSequence():
		err := node.Items(func(index int, item *yml.Node) error {
			aStation, err := decodeStation("", item)
			if err != nil {
				return fmt.Errorf("station[%d]: %w", index, err)
			}
			ret = append(ret, aStation)
			return nil
		})
		return ret, err
	case node.IsMap():
		err := node.Pairs(func(name string, item *yml.Node) error {
			aStation, err := decodeStation(name, item)
			if err != nil {
				return fmt.Errorf("station %v: %w", name, err)
			}
			ret = append(ret, aStation)
			return nil
		})
		return ret, err
	}
	return nil, fmt.Errorf("stations should be a list or a mapping")
}

func decodeStation(name string, node *yml.Node) (*Station, error) {
	if !node.IsMap() {
		return nil, fmt.Errorf("station should be a mapping")
	}
	ret := &Station{Name: name}
	err := node.Pairs(func(key string, value *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			ret.Name = value.String()
		case "type":
			ret.Type = value.String()
		case "raiseerror":
			flag := toolbox.AsBoolean(value.Interface())
			ret.RaiseError = &flag
		case "config":
			if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
				return nil
			}
			if !value.IsMap() {
				return fmt.Errorf("config should be a mapping")
			}
			ret.Config = value.Map()
		}
		return nil
	})
	return ret, err
}

// decodeConnections accepts chains as lists or as "a/b/c" text
func decodeConnections(node *yml.Node) ([][]string, error) {
	if !node.IsSequence() {
		return nil, fmt.Errorf("connections should be a list")
	}
	var ret [][]string
	err := node.Items(func(index int, item *yml.Node) error {
		switch {
		case item.IsSequence():
			ret = append(ret, item.Strings())
		case item.Kind == yaml.ScalarNode:
			ret = append(ret, path.New(item.Value).Tokens())
		default:
			return fmt.Errorf("connection[%d] should be a list or a path", index)
		}
		return nil
	})
	return ret, err
}

func decodePaths(node *yml.Node) ([]*Itinerary, error) {
	if !node.IsMap() {
		return nil, fmt.Errorf("paths should be a mapping")
	}
	var ret []*Itinerary
	err := node.Pairs(func(name string, value *yml.Node) error {
		ret = append(ret, &Itinerary{Name: name, Spec: value.Interface()})
		return nil
	})
	return ret, err
}
