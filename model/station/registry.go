package station

import (
	"sort"
	"sync"
)

// Registry maps station type names to factories
type Registry struct {
	factories map[string]Factory
	mux       sync.RWMutex
}

// Lookup returns a factory by type name
func (r *Registry) Lookup(kind string) Factory {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.factories[kind]
}

// Register registers a factory; an existing registration is replaced
func (r *Registry) Register(kind string, factory Factory) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.factories[kind] = factory
}

// Kinds returns registered type names
func (r *Registry) Kinds() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		ret = append(ret, kind)
	}
	sort.Strings(ret)
	return ret
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Clone returns an independent copy sharing the factories
func (r *Registry) Clone() *Registry {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := NewRegistry()
	for kind, factory := range r.factories {
		ret.factories[kind] = factory
	}
	return ret
}
