package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for metric registration.
type Config struct {
	// Namespace is the metric namespace prefix. Default: "spectools"
	Namespace string

	// Subsystem is the metric subsystem prefix. Default: "sel"
	Subsystem string

	// WalkDurationBuckets overrides the walk duration histogram
	// buckets. The defaults cover in-memory tree walks (1µs - 100ms).
	WalkDurationBuckets []float64
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{
		Namespace: "spectools",
		Subsystem: "sel",
	}
}

func (cfg *Config) withDefaults() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	out := *cfg
	if out.Namespace == "" {
		out.Namespace = "spectools"
	}
	if out.Subsystem == "" {
		out.Subsystem = "sel"
	}
	if len(out.WalkDurationBuckets) == 0 {
		out.WalkDurationBuckets = prometheus.ExponentialBuckets(0.000001, 4, 9) // 1µs to ~65ms
	}
	return &out
}

// WalkMetrics tracks schema-expression walks.
//
// Metrics:
//   - spectools_sel_walks_total: Completed walks by outcome
//   - spectools_sel_walk_duration_seconds: Whole-walk duration
//   - spectools_sel_nodes_visited_total: Visited nodes by dispatch kind
type WalkMetrics struct {
	// Completed walks, labeled by outcome ("ok" or "error")
	walksTotal *prometheus.CounterVec

	// Whole-walk duration histogram
	walkDuration prometheus.Histogram

	// Visited nodes, labeled by dispatch kind ("sel.core/and",
	// "sel.walk/set-of", "opaque", ...)
	nodesVisited *prometheus.CounterVec
}

// NewWalkMetrics creates and registers walk metrics with the provided
// registry. If registry is nil, a new registry is created.
func NewWalkMetrics(cfg *Config, registry *prometheus.Registry) *WalkMetrics {
	cfg = cfg.withDefaults()
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	wm := &WalkMetrics{
		walksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "walks_total",
				Help:      "Total number of completed schema walks",
			},
			[]string{"outcome"},
		),

		walkDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "walk_duration_seconds",
				Help:      "Duration of whole schema walks in seconds",
				Buckets:   cfg.WalkDurationBuckets,
			},
		),

		nodesVisited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "nodes_visited_total",
				Help:      "Total number of visited schema nodes by dispatch kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		wm.walksTotal,
		wm.walkDuration,
		wm.nodesVisited,
	)

	return wm
}

// NodeVisited records one visited node of the given dispatch kind.
func (wm *WalkMetrics) NodeVisited(kind string) {
	wm.nodesVisited.WithLabelValues(kind).Inc()
}

// ObserveWalk records a completed walk with its duration and outcome.
func (wm *WalkMetrics) ObserveWalk(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	wm.walksTotal.WithLabelValues(outcome).Inc()
	wm.walkDuration.Observe(duration.Seconds())
}

// RegistryMetrics tracks schema registry reloads.
//
// Metrics:
//   - spectools_sel_registry_reloads_total: Registry reloads by outcome
//   - spectools_sel_registry_schemas: Currently registered schema count
type RegistryMetrics struct {
	reloadsTotal *prometheus.CounterVec
	schemas      prometheus.Gauge
}

// NewRegistryMetrics creates and registers registry metrics with the
// provided registry. If registry is nil, a new registry is created.
func NewRegistryMetrics(cfg *Config, registry *prometheus.Registry) *RegistryMetrics {
	cfg = cfg.withDefaults()
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	rm := &RegistryMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_reloads_total",
				Help:      "Total number of schema registry reloads",
			},
			[]string{"outcome"},
		),

		schemas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_schemas",
				Help:      "Number of currently registered schemas",
			},
		),
	}

	registry.MustRegister(rm.reloadsTotal, rm.schemas)

	return rm
}

// ObserveReload records a registry reload and the resulting schema
// count.
func (rm *RegistryMetrics) ObserveReload(schemas int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	rm.reloadsTotal.WithLabelValues(outcome).Inc()
	if err == nil {
		rm.schemas.Set(float64(schemas))
	}
}
