package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/viewtree/pkg/view"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "viewtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for reconcile duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
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

// WithBuckets sets the reconcile duration histogram buckets.
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

// defaultConfig returns the default metrics configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "viewtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer records view engine events as Prometheus metrics. It implements
// view.Observer.
type Observer struct {
	lifecycleCalls    *prometheus.CounterVec
	reconcilesTotal   prometheus.Counter
	reconcileDuration prometheus.Histogram
	listSize          prometheus.Histogram
	viewsCreated      prometheus.Counter
	viewsRemoved      prometheus.Counter
}

// New creates an Observer and registers its metrics.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Observer{
		lifecycleCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lifecycle_calls_total",
			Help:        "Total number of lifecycle callbacks invoked",
			ConstLabels: config.ConstLabels,
		}, []string{"hook", "view"}),

		reconcilesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconciles_total",
			Help:        "Total number of list reconciliation passes",
			ConstLabels: config.ConstLabels,
		}),

		reconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_duration_seconds",
			Help:        "List reconciliation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		listSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_size",
			Help:        "Number of item views in a list after reconciliation",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),

		viewsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_created_total",
			Help:        "Total number of item views created by lists",
			ConstLabels: config.ConstLabels,
		}),

		viewsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_removed_total",
			Help:        "Total number of item views destroyed by lists",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Observe implements view.Observer.
func (o *Observer) Observe(ev view.Event) {
	switch ev.Kind {
	case view.EventMount, view.EventRemount, view.EventUnmount:
		o.lifecycleCalls.WithLabelValues(hookLabel(ev.Kind), viewLabel(ev.View)).Inc()
	case view.EventReconcile:
		o.reconcilesTotal.Inc()
		o.reconcileDuration.Observe(ev.Duration.Seconds())
		o.listSize.Observe(float64(ev.Size))
		o.viewsCreated.Add(float64(ev.Created))
		o.viewsRemoved.Add(float64(ev.Removed))
	}
}

// hookLabel returns the callback name for lifecycle events.
func hookLabel(k view.EventKind) string {
	return "on" + k.String()
}

// viewLabel returns the dynamic type name of v.
func viewLabel(v view.View) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%T", v)
}
