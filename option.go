package fluxpath

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/fluxpath/metrics"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/runtime/supervisor"
	"github.com/viant/fluxpath/station/builtin"
	"github.com/viant/fluxpath/station/cache"
	"github.com/viant/fluxpath/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps DefaultConfig
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithFileService sets storage used by definitions and file stations
func WithFileService(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithMetaBaseURL sets the base URL relative definition locations resolve against
func WithMetaBaseURL(URL string) Option {
	return func(s *Service) {
		s.metaBaseURL = URL
	}
}

// WithMetaFsOptions sets storage options used to load definitions, e.g. an embed.FS
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithRegistry replaces the built-in station registry
func WithRegistry(registry *station.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithStation registers an extra station type
func WithStation(kind string, factory station.Factory) Option {
	return func(s *Service) {
		s.extensions[kind] = factory
	}
}

// WithOutput sets the writer used by print stations
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.builtinOptions = append(s.builtinOptions, builtin.WithOutput(w))
	}
}

// WithCacheStore sets the store shared by cache stations
func WithCacheStore(store cache.Store) Option {
	return func(s *Service) {
		s.builtinOptions = append(s.builtinOptions, builtin.WithCacheStore(store))
	}
}

// WithLogger sets the logger handed to networks, supervisors and tracing
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the collector observing networks and supervisors
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithNetworkOptions adds options applied to every network
func WithNetworkOptions(options ...network.Option) Option {
	return func(s *Service) {
		s.networkOptions = append(s.networkOptions, options...)
	}
}

// WithSupervisorOptions adds options applied to every supervisor
func WithSupervisorOptions(options ...supervisor.Option) Option {
	return func(s *Service) {
		s.supervisorOptions = append(s.supervisorOptions, options...)
	}
}

// WithTracingExporter configures OpenTelemetry with a custom exporter, e.g.
// OTLP; the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
