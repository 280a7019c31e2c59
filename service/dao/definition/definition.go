// Package definition loads declarative network definitions: stations, their
// connections, named itineraries and nested networks used by sub-network
// stations.
package definition

import (
	"errors"
	"fmt"

	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/service/dao"
)

// ErrInvalid reports an inconsistent definition
var ErrInvalid = errors.New("invalid definition")

type (
	// Definition describes a network
	Definition struct {
		Name        string
		URL         string
		Stations    []*Station
		Connections [][]string
		Paths       []*Itinerary
		Networks    []*Definition
	}

	// Station declares a station instance of a registered type
	Station struct {
		Name       string
		Type       string
		RaiseError *bool
		Config     map[string]interface{}
	}

	// Itinerary is a named path spec: a string or a nested list
	Itinerary struct {
		Name string
		Spec interface{}
	}
)

// Station returns a station by name
func (d *Definition) Station(name string) *Station {
	for _, candidate := range d.Stations {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Network returns a nested definition by name
func (d *Definition) Network(name string) *Definition {
	for _, candidate := range d.Networks {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// PathNames returns itinerary names in declaration order
func (d *Definition) PathNames() []string {
	ret := make([]string, 0, len(d.Paths))
	for _, itinerary := range d.Paths {
		ret = append(ret, itinerary.Name)
	}
	return ret
}

// Path parses a named itinerary; an empty name selects the first one
func (d *Definition) Path(name string, options ...path.Option) (*path.Logical, error) {
	for _, itinerary := range d.Paths {
		if name == "" || itinerary.Name == name {
			return path.Parse(itinerary.Spec, options...)
		}
	}
	if name == "" {
		return nil, fmt.Errorf("%v: no paths defined: %w", d.Name, dao.ErrNotFound)
	}
	return nil, fmt.Errorf("%v: path %q: %w", d.Name, name, dao.ErrNotFound)
}

// Validate checks names, connections and path specs, including nested networks
func (d *Definition) Validate() error {
	var errs []error
	names := map[string]bool{}
	for i, aStation := range d.Stations {
		switch {
		case aStation.Name == "":
			errs = append(errs, fmt.Errorf("%w: %v: station[%d] name was empty", ErrInvalid, d.Name, i))
			continue
		case aStation.Type == "":
			errs = append(errs, fmt.Errorf("%w: %v: station %q type was empty", ErrInvalid, d.Name, aStation.Name))
		case names[aStation.Name]:
			errs = append(errs, fmt.Errorf("%w: %v: duplicate station %q", ErrInvalid, d.Name, aStation.Name))
		}
		names[aStation.Name] = true
	}
	for _, chain := range d.Connections {
		for _, name := range chain {
			if !names[name] {
				errs = append(errs, fmt.Errorf("%w: %v: connection references unknown station %q", ErrInvalid, d.Name, name))
			}
		}
	}
	for _, itinerary := range d.Paths {
		if _, err := path.Parse(itinerary.Spec); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v: path %q: %w", ErrInvalid, d.Name, itinerary.Name, err))
		}
	}
	networks := map[string]bool{}
	for _, nested := range d.Networks {
		if networks[nested.Name] {
			errs = append(errs, fmt.Errorf("%w: %v: duplicate network %q", ErrInvalid, d.Name, nested.Name))
		}
		networks[nested.Name] = true
		if err := nested.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Station) config() map[string]interface{} {
	ret := make(map[string]interface{}, len(s.Config)+1)
	for k, v := range s.Config {
		ret[k] = v
	}
	if s.RaiseError != nil {
		ret[raiseErrorKey] = *s.RaiseError
	}
	return ret
}
