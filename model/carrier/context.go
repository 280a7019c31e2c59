package carrier

import (
	"sort"
	"sync"
)

// Context is the string-keyed side channel shared by all stations on a
// carrier's itinerary. It is safe for concurrent use so that sub-networks and
// observers may read it while the owning traversal runs.
type Context struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewContext creates a context seeded with values
func NewContext(values map[string]interface{}) *Context {
	ret := &Context{values: make(map[string]interface{}, len(values))}
	for k, v := range values {
		ret.values[k] = v
	}
	return ret
}

// Get returns the value stored under key
func (c *Context) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

// Value returns the value stored under key or fallback when absent
func (c *Context) Value(key string, fallback interface{}) interface{} {
	if value, ok := c.Get(key); ok {
		return value
	}
	return fallback
}

// GetString returns a string value
func (c *Context) GetString(key string) (string, bool) {
	value, ok := c.Get(key)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// Set stores value under key
func (c *Context) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Delete removes key
func (c *Context) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// Keys returns sorted keys
func (c *Context) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]string, 0, len(c.values))
	for k := range c.values {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Values returns a copy of all entries
func (c *Context) Values() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make(map[string]interface{}, len(c.values))
	for k, v := range c.values {
		ret[k] = v
	}
	return ret
}

// Clone returns an independent copy
func (c *Context) Clone() *Context {
	return NewContext(c.Values())
}
