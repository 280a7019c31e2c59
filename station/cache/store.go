// Package cache provides the cache station and the shared store it uses.
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/viant/fluxpath/internal/clock"
)

// NoExpiry keeps an entry until it is evicted or deleted
const NoExpiry = time.Duration(-1)

// Store is a synchronised key/value store shared by cache stations
type Store interface {
	Get(key string) (interface{}, bool)
	// Set stores value; a negative expiry never expires
	Set(key string, value interface{}, expires time.Duration)
	Delete(key string)
}

type entry struct {
	value   interface{}
	created time.Time
	expires time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return e.expires >= 0 && now.Sub(e.created) > e.expires
}

// LRU is a size bounded Store with per entry expiry
type LRU struct {
	cache *lru.Cache
}

// Get returns a live entry
func (s *LRU) Get(key string) (interface{}, bool) {
	value, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	anEntry := value.(*entry)
	if anEntry.expired(clock.Now()) {
		s.cache.Remove(key)
		return nil, false
	}
	return anEntry.value, true
}

// Set stores value
func (s *LRU) Set(key string, value interface{}, expires time.Duration) {
	s.cache.Add(key, &entry{value: value, created: clock.Now(), expires: expires})
}

// Delete removes key
func (s *LRU) Delete(key string) {
	s.cache.Remove(key)
}

// Len returns number of stored entries, including expired ones not yet evicted
func (s *LRU) Len() int {
	return s.cache.Len()
}

// NewLRU creates a store holding up to size entries
func NewLRU(size int) (*LRU, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}
	return &LRU{cache: cache}, nil
}
