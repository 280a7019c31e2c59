// Package metrics exposes network and supervisor activity as Prometheus
// collectors held in a dedicated registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/runtime/supervisor"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "fluxpath"

const (
	StationInvocations = "station_invocations_total"
	StationLatency     = "station_latency_seconds"
	Traversals         = "traversals_total"
	TraversalLatency   = "traversal_latency_seconds"
	Iterations         = "job_iterations_total"
	Jobs               = "jobs_total"
	InflightJobs       = "jobs_inflight"

	statusOK    = "ok"
	statusError = "error"
)

type opts struct {
	Help    string
	Labels  []string
	Buckets []float64
}

var (
	counters = map[string]opts{
		StationInvocations: {Help: "Station invocations by station, gate and status.", Labels: []string{"station", "gate", "status"}},
		Traversals:         {Help: "Completed carrier traversals by status.", Labels: []string{"status"}},
		Iterations:         {Help: "Supervised traversal iterations by session and status.", Labels: []string{"session", "status"}},
		Jobs:               {Help: "Finished supervised jobs by session and final state.", Labels: []string{"session", "state"}},
	}
	gauges = map[string]opts{
		InflightJobs: {Help: "Supervised jobs currently running by session.", Labels: []string{"session"}},
	}
	histograms = map[string]opts{
		StationLatency:   {Help: "Station execution latency.", Labels: []string{"station"}, Buckets: prometheus.DefBuckets},
		TraversalLatency: {Help: "Carrier traversal latency.", Labels: []string{}, Buckets: prometheus.DefBuckets},
	}
)

// Collector records metrics; it implements network.Observer and supervisor.Observer
type Collector struct {
	namespace  string
	reg        *prometheus.Registry
	gauges     map[string]*prometheus.GaugeVec
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// Registry returns the registry holding the collectors
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Counter returns a counter vector by name
func (c *Collector) Counter(name string) *prometheus.CounterVec {
	return c.counters[name]
}

// Gauge returns a gauge vector by name
func (c *Collector) Gauge(name string) *prometheus.GaugeVec {
	return c.gauges[name]
}

// Histogram returns a histogram vector by name
func (c *Collector) Histogram(name string) *prometheus.HistogramVec {
	return c.histograms[name]
}

// OnStation implements network.Observer
func (c *Collector) OnStation(station, gate string, elapsed time.Duration, err error) {
	c.counters[StationInvocations].WithLabelValues(station, gate, status(err)).Inc()
	c.histograms[StationLatency].WithLabelValues(station).Observe(elapsed.Seconds())
}

// OnTraversal implements network.Observer
func (c *Collector) OnTraversal(_ *carrier.Carrier, elapsed time.Duration, err error) {
	c.counters[Traversals].WithLabelValues(status(err)).Inc()
	c.histograms[TraversalLatency].WithLabelValues().Observe(elapsed.Seconds())
}

// OnJobStart implements supervisor.Observer
func (c *Collector) OnJobStart(session string, _ *supervisor.Job) {
	c.gauges[InflightJobs].WithLabelValues(session).Inc()
}

// OnIteration implements supervisor.Observer
func (c *Collector) OnIteration(session string, _ *supervisor.Job, err error) {
	c.counters[Iterations].WithLabelValues(session, status(err)).Inc()
}

// OnJobDone implements supervisor.Observer
func (c *Collector) OnJobDone(session string, job *supervisor.Job) {
	c.gauges[InflightJobs].WithLabelValues(session).Dec()
	c.counters[Jobs].WithLabelValues(session, job.State().String()).Inc()
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}

func (c *Collector) init() error {
	for name, opt := range gauges {
		gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: c.namespace, Name: name, Help: opt.Help}, opt.Labels)
		c.gauges[name] = gv
		if err := c.reg.Register(gv); err != nil {
			return err
		}
	}
	for name, opt := range counters {
		cv := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: c.namespace, Name: name, Help: opt.Help}, opt.Labels)
		c.counters[name] = cv
		if err := c.reg.Register(cv); err != nil {
			return err
		}
	}
	for name, opt := range histograms {
		hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: c.namespace, Name: name, Help: opt.Help, Buckets: opt.Buckets}, opt.Labels)
		c.histograms[name] = hv
		if err := c.reg.Register(hv); err != nil {
			return err
		}
	}
	return nil
}

// New creates a collector with its own registry; an empty namespace uses DefaultNamespace
func New(namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	ret := &Collector{
		namespace:  namespace,
		reg:        prometheus.NewRegistry(),
		gauges:     make(map[string]*prometheus.GaugeVec),
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

var (
	_ network.Observer    = (*Collector)(nil)
	_ supervisor.Observer = (*Collector)(nil)
)
