package fluxpath

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/fluxpath/internal/logging"
	"github.com/viant/fluxpath/metrics"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/runtime/supervisor"
	"github.com/viant/fluxpath/service/dao/definition"
	"github.com/viant/fluxpath/station/builtin"
	"github.com/viant/fluxpath/tracing"
)

// Service wires definitions, the station registry, networks and supervisors
type Service struct {
	config            *Config
	fs                afs.Service
	metaBaseURL       string
	metaFsOptions     []storage.Option
	registry          *station.Registry
	extensions        map[string]station.Factory
	builtinOptions    []builtin.Option
	definitions       *definition.Service
	metrics           *metrics.Collector
	logger            logr.Logger
	loggerSet         bool
	networkOptions    []network.Option
	supervisorOptions []supervisor.Option
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	s.loggerSet = s.logger.GetSink() != nil
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.config.Log.Verbosity > 0 {
		logging.SetVerbosity(s.config.Log.Verbosity)
	}
	if !s.loggerSet {
		s.logger = logging.New("fluxpath")
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.registry == nil {
		registry, err := builtin.Registry(append([]builtin.Option{
			builtin.WithFileService(s.fs),
			builtin.WithCacheSize(s.config.Cache.Size),
			builtin.WithPathOptions(s.config.pathOptions()...),
		}, s.builtinOptions...)...)
		if err != nil {
			return err
		}
		s.registry = registry
	}
	for kind, factory := range s.extensions {
		s.registry.Register(kind, factory)
	}
	s.definitions = definition.New(s.fs, s.metaBaseURL, s.metaFsOptions...)
	if s.metrics == nil && s.config.Metrics.Enabled {
		collector, err := metrics.New(s.config.Metrics.Namespace)
		if err != nil {
			return err
		}
		s.metrics = collector
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		tracing.SetLogger(s.logger)
	}
	return nil
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Registry returns the station registry
func (s *Service) Registry() *station.Registry {
	return s.registry
}

// Definitions returns the definition store
func (s *Service) Definitions() *definition.Service {
	return s.definitions
}

// Metrics returns the collector or nil when metrics are disabled
func (s *Service) Metrics() *metrics.Collector {
	return s.metrics
}

// PathOptions returns itinerary parsing options from the config
func (s *Service) PathOptions() []path.Option {
	return s.config.pathOptions()
}

func (s *Service) networkOpts() []network.Option {
	ret := []network.Option{
		network.WithPathValidation(s.config.Path.Validate),
	}
	if s.loggerSet {
		ret = append(ret, network.WithLogger(s.logger.WithName("network")))
	}
	if s.metrics != nil {
		ret = append(ret, network.WithObserver(s.metrics))
	}
	return append(ret, s.networkOptions...)
}

// NewNetwork creates a network configured by the service
func (s *Service) NewNetwork(aSchema *schema.Schema) *network.Network {
	return network.New(aSchema, s.networkOpts()...)
}

// NewSupervisor creates a supervisor configured by the service
func (s *Service) NewSupervisor(net *network.Network) *supervisor.Supervisor {
	config := s.config.Supervisor
	options := []supervisor.Option{
		supervisor.WithWorkers(config.Workers),
		supervisor.WithMaxIterations(config.MaxIterations),
		supervisor.WithPollInterval(config.PollInterval()),
	}
	if s.loggerSet {
		options = append(options, supervisor.WithLogger(s.logger.WithName("supervisor")))
	}
	if s.metrics != nil {
		options = append(options, supervisor.WithObserver(s.metrics))
	}
	return supervisor.New(net, append(options, s.supervisorOptions...)...)
}

// Load returns a flow for the definition at location; loaded definitions are
// kept by name
func (s *Service) Load(ctx context.Context, location string) (*Flow, error) {
	aDefinition, err := s.definitions.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.Build(aDefinition)
}

// Decode returns a flow for an inline YAML or JSON definition
func (s *Service) Decode(data []byte) (*Flow, error) {
	aDefinition, err := definition.Decode(data)
	if err != nil {
		return nil, err
	}
	return s.Build(aDefinition)
}

// Build creates the schema and network of a definition
func (s *Service) Build(aDefinition *definition.Definition) (*Flow, error) {
	aSchema, err := aDefinition.Build(s.registry,
		definition.WithNetworkOptions(s.networkOpts()...),
		definition.WithPathOptions(s.PathOptions()...))
	if err != nil {
		return nil, err
	}
	return &Flow{
		Definition: aDefinition,
		Schema:     aSchema,
		Network:    s.NewNetwork(aSchema),
		service:    s,
	}, nil
}

// New creates a service
func New(options ...Option) (*Service, error) {
	ret := &Service{
		config:     DefaultConfig(),
		extensions: map[string]station.Factory{},
	}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
