// Package metrics collects Prometheus metrics for navigation and content loading.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "jrouter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for load duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "jrouter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the router's Prometheus metrics.
// A nil *Collector is valid and records nothing.
type Collector struct {
	dispatchesTotal *prometheus.CounterVec
	loadDuration    *prometheus.HistogramVec
	loadErrors      *prometheus.CounterVec
	activeRouters   prometheus.Gauge
	fetchesTotal    *prometheus.CounterVec
}

// New registers the collectors and returns them.
//
// Metrics collected:
//   - jrouter_dispatches_total: Counter of dispatches by outcome
//   - jrouter_load_duration_seconds: Histogram of content fetch duration by target
//   - jrouter_load_errors_total: Counter of failed fetches by error type
//   - jrouter_active_routers: Gauge of started routers
//   - jrouter_fetches_total: Counter of loader fetches by backend and status
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		dispatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of navigation dispatches",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		loadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "load_duration_seconds",
			Help:        "Content fetch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"target"}),

		loadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "load_errors_total",
			Help:        "Total number of failed content fetches",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),

		activeRouters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_routers",
			Help:        "Number of started routers",
			ConstLabels: config.ConstLabels,
		}),

		fetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fetches_total",
			Help:        "Total number of loader fetches",
			ConstLabels: config.ConstLabels,
		}, []string{"backend", "status"}),
	}
}

// ObserveDispatch counts one dispatch with the given outcome.
func (c *Collector) ObserveDispatch(outcome string) {
	if c == nil {
		return
	}
	c.dispatchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveLoad records one content fetch.
func (c *Collector) ObserveLoad(target string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.loadDuration.WithLabelValues(target).Observe(d.Seconds())
	if err != nil {
		c.loadErrors.WithLabelValues(categorizeError(err)).Inc()
	}
}

// ObserveFetch counts one loader fetch. Status is "ok", an HTTP status
// code, or an error category.
func (c *Collector) ObserveFetch(backend, status string) {
	if c == nil {
		return
	}
	c.fetchesTotal.WithLabelValues(backend, status).Inc()
}

// ErrorCategory returns the low-cardinality category used for err in
// error labels.
func ErrorCategory(err error) string {
	return categorizeError(err)
}

// RouterStarted increments the active router gauge.
func (c *Collector) RouterStarted() {
	if c == nil {
		return
	}
	c.activeRouters.Inc()
}

// RouterStopped decrements the active router gauge.
func (c *Collector) RouterStopped() {
	if c == nil {
		return
	}
	c.activeRouters.Dec()
}

// categorizeError returns a low-cardinality category for err.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "context canceled"):
		return "canceled"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "not found"), strings.Contains(msg, "status 404"), strings.Contains(msg, "nosuchkey"):
		return "not_found"
	case strings.Contains(msg, "forbidden"), strings.Contains(msg, "status 403"), strings.Contains(msg, "accessdenied"):
		return "forbidden"
	case strings.Contains(msg, "status 5"):
		return "server"
	default:
		return "internal"
	}
}
