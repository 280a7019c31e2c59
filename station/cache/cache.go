package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/toolbox"
)

// Kind names the cache station type
const Kind = "cache"

// Actions supported by the cache station
const (
	ActionGet    = "get"
	ActionSet    = "set"
	ActionDelete = "del"
)

// Config configures the cache station. CacheExpires is expressed in seconds;
// a negative value never expires.
type Config struct {
	Action           string  `json:"action,omitempty" yaml:"action,omitempty"`
	NextStation      string  `json:"nextStation,omitempty" yaml:"nextStation,omitempty"`
	KeyPrefix        string  `json:"keyPrefix,omitempty" yaml:"keyPrefix,omitempty"`
	CacheKey         string  `json:"cacheKey,omitempty" yaml:"cacheKey,omitempty"`
	CacheExpires     float64 `json:"cacheExpires,omitempty" yaml:"cacheExpires,omitempty"`
	CacheKeyAttr     string  `json:"cacheKeyAttr,omitempty" yaml:"cacheKeyAttr,omitempty"`
	CacheExpiresAttr string  `json:"cacheExpiresAttr,omitempty" yaml:"cacheExpiresAttr,omitempty"`
}

func defaultConfig() Config {
	return Config{
		Action:           ActionSet,
		KeyPrefix:        "_",
		CacheExpires:     -1,
		CacheKeyAttr:     "cache_key",
		CacheExpiresAttr: "cache_expires",
	}
}

// Block reads, writes or deletes the payload in a shared store. On a get hit
// with NextStation configured the carrier jumps to that station.
type Block struct {
	config Config
	store  Store
}

// Execute applies the configured action
func (b *Block) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	key := b.config.KeyPrefix + "_" + toolbox.AsString(b.lookup(payload, state, b.config.CacheKeyAttr, b.config.CacheKey))
	switch b.config.Action {
	case ActionGet:
		cached, ok := b.store.Get(key)
		if !ok {
			return payload, nil
		}
		if c != nil && b.config.NextStation != "" {
			if err := c.MoveToStation(b.config.NextStation); err != nil {
				return nil, err
			}
		}
		return cached, nil
	case ActionSet:
		seconds := toolbox.AsFloat(b.lookup(payload, state, b.config.CacheExpiresAttr, b.config.CacheExpires))
		expires := NoExpiry
		if seconds >= 0 {
			expires = time.Duration(seconds * float64(time.Second))
		}
		b.store.Set(key, payload, expires)
	case ActionDelete:
		b.store.Delete(key)
	}
	return payload, nil
}

// lookup resolves attr from a map payload, then from the carrier context
func (b *Block) lookup(payload interface{}, state *carrier.Context, attr string, fallback interface{}) interface{} {
	if aMap, ok := payload.(map[string]interface{}); ok {
		if value, ok := aMap[attr]; ok && value != nil && value != "" {
			return value
		}
	}
	if state != nil {
		if value, ok := state.Get(attr); ok && value != nil && value != "" {
			return value
		}
	}
	return fallback
}

// NewFactory returns a cache station factory bound to store
func NewFactory(store Store) station.Factory {
	return func(name string, config map[string]interface{}) (station.Block, error) {
		if store == nil {
			return nil, fmt.Errorf("%v: cache store was nil", name)
		}
		ret := &Block{config: defaultConfig(), store: store}
		if err := station.DecodeConfig(config, &ret.config); err != nil {
			return nil, fmt.Errorf("invalid %v config: %w", name, err)
		}
		switch ret.config.Action {
		case ActionGet, ActionSet, ActionDelete:
		default:
			return nil, fmt.Errorf("invalid %v action: %q", name, ret.config.Action)
		}
		return ret, nil
	}
}
