package schema

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/station"
)

// Schema binds station names to block instances and records declared
// connections. Build it once; it becomes read-only when sealed by the first
// traversal.
type Schema struct {
	mux      sync.RWMutex
	stations map[string]*Station
	order    []string
	edges    map[string][]string
	sealed   atomic.Bool
}

// New creates an empty schema
func New() *Schema {
	return &Schema{
		stations: map[string]*Station{},
		edges:    map[string][]string{},
	}
}

// Add creates a station with factory and registers it under name. The
// reserved config key "raiseError" controls error propagation.
func (s *Schema) Add(factory station.Factory, name string, config map[string]interface{}) error {
	if factory == nil {
		return fmt.Errorf("station %q: factory was nil", name)
	}
	if _, ok := s.Lookup(name); ok {
		return &DuplicateNameError{Name: name}
	}
	cfg, options := stationConfig(config)
	block, err := factory(name, cfg)
	if err != nil {
		return fmt.Errorf("failed to create station %q: %w", name, err)
	}
	return s.Register(name, block, options...)
}

// Register binds an existing block instance under name
func (s *Schema) Register(name string, block station.Block, options ...StationOption) error {
	if name == "" {
		return fmt.Errorf("station name was empty")
	}
	if block == nil {
		return fmt.Errorf("station %q: block was nil", name)
	}
	if s.sealed.Load() {
		return ErrSealed
	}
	aStation := &Station{Name: name, Block: block, RaiseError: true}
	for _, opt := range options {
		opt(aStation)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.stations[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	s.stations[name] = aStation
	s.order = append(s.order, name)
	return nil
}

// Connect declares a directed edge from -> to
func (s *Schema) Connect(from, to string) error {
	if s.sealed.Load() {
		return ErrSealed
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, candidate := range s.edges[from] {
		if candidate == to {
			return nil
		}
	}
	s.edges[from] = append(s.edges[from], to)
	return nil
}

// ConnectChain declares edges between consecutive names
func (s *Schema) ConnectChain(names ...string) error {
	for i := 1; i < len(names); i++ {
		if err := s.Connect(names[i-1], names[i]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns a station by physical name
func (s *Schema) Lookup(name string) (*Station, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret, ok := s.stations[name]
	return ret, ok
}

// Names returns station names in registration order
func (s *Schema) Names() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]string(nil), s.order...)
}

// Successors returns declared downstream stations of name
func (s *Schema) Successors(name string) []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]string(nil), s.edges[name]...)
}

// HasEdge returns true if from -> to was declared
func (s *Schema) HasEdge(from, to string) bool {
	for _, candidate := range s.Successors(from) {
		if candidate == to {
			return true
		}
	}
	return false
}

// Edges returns a copy of the adjacency
func (s *Schema) Edges() map[string][]string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make(map[string][]string, len(s.edges))
	for k, v := range s.edges {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

// Validate checks that every declared edge joins registered stations
func (s *Schema) Validate() error {
	for from, successors := range s.Edges() {
		if _, ok := s.Lookup(from); !ok {
			return &UnknownStationError{Token: from}
		}
		for _, to := range successors {
			if _, ok := s.Lookup(to); !ok {
				return &UnknownStationError{Token: to}
			}
		}
	}
	return nil
}

// ValidatePath checks that every itinerary station is registered and every
// logical connection of the itinerary was declared with Connect.
func (s *Schema) ValidatePath(itinerary *path.Logical) error {
	physical := itinerary.PhysicalPath()
	for i := 0; i < physical.Len(); i++ {
		if _, ok := s.Lookup(physical.At(i)); !ok {
			return &UnknownStationError{Token: itinerary.At(i)}
		}
	}
	for from, downstream := range itinerary.Outputs() {
		fromStation, _ := path.SplitGate(from, itinerary.DefaultGate())
		for _, to := range downstream {
			toStation, _ := path.SplitGate(to, itinerary.DefaultGate())
			if fromStation == toStation {
				continue
			}
			if !s.HasEdge(fromStation, toStation) {
				return fmt.Errorf("%w: %v -> %v", ErrMissingEdge, fromStation, toStation)
			}
		}
	}
	return nil
}

// Seal makes the schema read-only
func (s *Schema) Seal() {
	s.sealed.Store(true)
}

// Sealed returns true once the schema became read-only
func (s *Schema) Sealed() bool {
	return s.sealed.Load()
}
