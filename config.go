package fluxpath

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/service/meta"
	"github.com/viant/fluxpath/station/builtin"
)

// Config is a serialisable representation of the service configuration. The
// zero value of every nested field falls back to the package default.
type Config struct {
	Path       PathConfig       `json:"path" yaml:"path"`
	Supervisor SupervisorConfig `json:"supervisor" yaml:"supervisor"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// PathConfig controls itinerary parsing and checks
type PathConfig struct {
	Separator   string `json:"separator,omitempty" yaml:"separator,omitempty"`
	DefaultGate string `json:"defaultGate,omitempty" yaml:"defaultGate,omitempty"`
	// Validate rejects itineraries using undeclared station connections
	Validate bool `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// SupervisorConfig controls the re-queue loop
type SupervisorConfig struct {
	Workers        int `json:"workers,omitempty" yaml:"workers,omitempty"`
	MaxIterations  int `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty"`
	PollIntervalMs int `json:"pollIntervalMs,omitempty" yaml:"pollIntervalMs,omitempty"`
}

// PollInterval returns the pause between iterations
func (c *SupervisorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// TracingConfig enables the stdout span exporter
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Service    string `json:"service,omitempty" yaml:"service,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// MetricsConfig enables Prometheus collectors
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// CacheConfig sizes the store shared by cache stations
type CacheConfig struct {
	Size int `json:"size,omitempty" yaml:"size,omitempty"`
}

// LogConfig sets logger verbosity
type LogConfig struct {
	Verbosity int `json:"verbosity,omitempty" yaml:"verbosity,omitempty"`
}

// DefaultConfig returns a Config populated with package defaults
func DefaultConfig() *Config {
	return &Config{
		Path: PathConfig{
			Separator:   path.DefaultSeparator,
			DefaultGate: path.DefaultGate,
		},
		Tracing: TracingConfig{
			Service: "fluxpath",
			Version: Version,
		},
		Cache: CacheConfig{Size: builtin.DefaultCacheSize},
	}
}

// Validate returns aggregated error describing invalid settings or nil
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Supervisor.Workers < 0 {
		errs = append(errs, fmt.Errorf("supervisor.workers must be >= 0"))
	}
	if c.Supervisor.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("supervisor.maxIterations must be >= 0"))
	}
	if c.Supervisor.PollIntervalMs < 0 {
		errs = append(errs, fmt.Errorf("supervisor.pollIntervalMs must be >= 0"))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Errorf("cache.size must be >= 0"))
	}
	if c.Tracing.Enabled && c.Tracing.Service == "" {
		errs = append(errs, fmt.Errorf("tracing.service was empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) pathOptions() []path.Option {
	var ret []path.Option
	if c.Path.Separator != "" {
		ret = append(ret, path.WithSeparator(c.Path.Separator))
	}
	if c.Path.DefaultGate != "" {
		ret = append(ret, path.WithDefaultGate(c.Path.DefaultGate))
	}
	return ret
}

// LoadConfig loads a YAML or JSON config on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "").Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
