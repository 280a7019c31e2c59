// Package builtin registers the stations shipped with fluxpath.
package builtin

import (
	"io"

	"github.com/viant/afs"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/station/basic"
	"github.com/viant/fluxpath/station/cache"
	"github.com/viant/fluxpath/station/codec"
	"github.com/viant/fluxpath/station/file"
	"github.com/viant/fluxpath/station/subnetwork"
)

// DefaultCacheSize bounds the cache store created when none is supplied
const DefaultCacheSize = 1024

type options struct {
	fs        afs.Service
	output    io.Writer
	store     cache.Store
	cacheSize int
	resolver  subnetwork.Resolver
	paths     []path.Option
}

// Option customises built-in stations
type Option func(o *options)

// WithFileService sets storage used by file stations
func WithFileService(fs afs.Service) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithOutput sets the print station writer
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithCacheStore sets the store shared by cache stations
func WithCacheStore(store cache.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCacheSize sets the size of the default cache store
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithNetworks sets the resolver used by sub-network stations
func WithNetworks(resolver subnetwork.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithPathOptions sets how sub-network stations parse nested itineraries
func WithPathOptions(pathOptions ...path.Option) Option {
	return func(o *options) {
		o.paths = append(o.paths, pathOptions...)
	}
}

// Registry returns a registry with every built-in station kind
func Registry(opts ...Option) (*station.Registry, error) {
	o := &options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		store, err := cache.NewLRU(o.cacheSize)
		if err != nil {
			return nil, err
		}
		o.store = store
	}
	ret := station.NewRegistry()
	ret.Register(codec.JSONLoadKind, codec.NewJSONLoad)
	ret.Register(codec.JSONDumpKind, codec.NewJSONDump)
	ret.Register(codec.CSVLoadKind, codec.NewCSVLoad)
	ret.Register(file.ReadKind, file.NewReadFactory(o.fs))
	ret.Register(file.WriteKind, file.NewWriteFactory(o.fs))
	ret.Register(basic.PrintKind, basic.NewPrintFactory(o.output))
	ret.Register(basic.ExtractKind, basic.NewExtract)
	ret.Register(cache.Kind, cache.NewFactory(o.store))
	ret.Register(subnetwork.Kind, subnetwork.NewFactory(o.resolver, o.paths...))
	return ret, nil
}
